package entities

import "time"

// The admin console keeps its lending data in a relational store. Book
// bibliographic data is NOT duplicated there: stock rows and transactions
// reference catalog book identifiers, so the catalog service stays the
// single source of truth for what a book is.

// TransactionStatus is the lifecycle state of a borrow transaction.
type TransactionStatus string

const (
	TransactionBorrowed TransactionStatus = "borrowed"
	TransactionReturned TransactionStatus = "returned"
	TransactionOverdue  TransactionStatus = "overdue"
)

// Stock tracks how many copies of a catalog book the library holds.
type Stock struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookID      string    `gorm:"uniqueIndex;size:64" json:"book_id"`
	Quantity    int       `gorm:"default:0" json:"quantity"`
	Available   int       `gorm:"default:0" json:"available"`
	CreatedDate string    `gorm:"size:10" json:"created_date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Member is a registered library user who can borrow books.
type Member struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"uniqueIndex;size:100" json:"username"`
	Name          string    `gorm:"size:200" json:"name"`
	Email         string    `gorm:"size:255" json:"email"`
	UserType      string    `gorm:"size:20;default:'member'" json:"user_type"`
	Status        string    `gorm:"size:20;default:'active'" json:"status"`
	JoinDate      string    `gorm:"size:10" json:"join_date"` // YYYY-MM-DD
	BorrowedCount int       `gorm:"default:0" json:"borrowed_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Transaction records a single borrow of a catalog book by a member.
type Transaction struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	MemberID   uint              `gorm:"index" json:"member_id"`
	BookID     string            `gorm:"index;size:64" json:"book_id"`
	BorrowDate string            `gorm:"size:10" json:"borrow_date"`
	DueDate    string            `gorm:"size:10" json:"due_date"`
	ReturnDate string            `gorm:"size:10" json:"return_date,omitempty"`
	Status     TransactionStatus `gorm:"size:20;default:'borrowed'" json:"status"`
	FineAmount float64           `gorm:"default:0" json:"fine_amount"`
	Member     Member            `gorm:"foreignKey:MemberID" json:"-"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Policy holds the library lending rules. There is exactly one row.
type Policy struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	BorrowPeriodDays int     `gorm:"default:28" json:"borrow_period_days"`
	MaxBooksPerUser  int     `gorm:"default:5" json:"max_books_per_user"`
	FinePerDay       float64 `gorm:"default:0.5" json:"fine_per_day"`
}

func (Stock) TableName() string {
	return "stock"
}

func (Member) TableName() string {
	return "users"
}

func (Transaction) TableName() string {
	return "transactions"
}

func (Policy) TableName() string {
	return "policies"
}
