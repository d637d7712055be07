package admin

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/libriscore/libris/internal/entities"
)

const dateLayout = "2006-01-02"

var (
	// ErrNoStock is returned when a borrow is attempted with no copies left.
	ErrNoStock = errors.New("no copies available")
	// ErrBorrowLimit is returned when a member is at the policy's book limit.
	ErrBorrowLimit = errors.New("member has reached the borrow limit")
	// ErrAlreadyReturned is returned when a closed transaction is returned again.
	ErrAlreadyReturned = errors.New("transaction already returned")
	// ErrDuplicateMember is returned when a username is already registered.
	ErrDuplicateMember = errors.New("username already registered")
)

// DashboardCounts summarizes the lending store for the admin dashboard.
type DashboardCounts struct {
	StockedTitles   int64 `json:"stocked_titles"`
	TotalCopies     int   `json:"total_copies"`
	AvailableCopies int   `json:"available_copies"`
	TotalMembers    int64 `json:"total_members"`
	ActiveLoans     int64 `json:"active_loans"`
}

func (d *Database) GetStock(bookID string) (*entities.Stock, error) {
	var stock entities.Stock
	err := d.DB.Where("book_id = ?", bookID).First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (d *Database) ListStock() ([]entities.Stock, error) {
	var stock []entities.Stock
	err := d.DB.Order("book_id ASC").Find(&stock).Error
	return stock, err
}

// SetStock creates or updates the stock row for a catalog book. On update
// the available count shifts by the quantity delta, floored at zero so
// open loans are never counted as available.
func (d *Database) SetStock(bookID string, quantity int) (*entities.Stock, error) {
	var stock entities.Stock
	result := d.DB.Where("book_id = ?", bookID).First(&stock)
	if result.Error == gorm.ErrRecordNotFound {
		stock = entities.Stock{
			BookID:      bookID,
			Quantity:    quantity,
			Available:   quantity,
			CreatedDate: time.Now().Format(dateLayout),
		}
		if err := d.DB.Create(&stock).Error; err != nil {
			return nil, err
		}
		return &stock, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	stock.Available += quantity - stock.Quantity
	if stock.Available < 0 {
		stock.Available = 0
	}
	stock.Quantity = quantity
	if err := d.DB.Save(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (d *Database) DeleteStock(bookID string) error {
	return d.DB.Where("book_id = ?", bookID).Delete(&entities.Stock{}).Error
}

func (d *Database) CreateMember(username, name, email string) (*entities.Member, error) {
	var existing entities.Member
	result := d.DB.Where("username = ?", username).First(&existing)
	if result.Error == nil {
		return nil, ErrDuplicateMember
	}
	if result.Error != gorm.ErrRecordNotFound {
		return nil, result.Error
	}

	member := &entities.Member{
		Username: username,
		Name:     name,
		Email:    email,
		UserType: "member",
		Status:   "active",
		JoinDate: time.Now().Format(dateLayout),
	}
	if err := d.DB.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (d *Database) GetMemberByID(id uint) (*entities.Member, error) {
	var member entities.Member
	err := d.DB.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) GetMemberByUsername(username string) (*entities.Member, error) {
	var member entities.Member
	err := d.DB.Where("username = ?", username).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) ListMembers() ([]entities.Member, error) {
	var members []entities.Member
	err := d.DB.Order("username ASC").Find(&members).Error
	return members, err
}

func (d *Database) DeleteMember(id uint) error {
	return d.DB.Delete(&entities.Member{}, id).Error
}

// BorrowBook opens a loan for a member. The due date comes from the
// lending policy's borrow period, counted from today.
func (d *Database) BorrowBook(memberID uint, bookID string) (*entities.Transaction, error) {
	member, err := d.GetMemberByID(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	policy, err := d.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to load lending policy: %w", err)
	}

	var openLoans int64
	err = d.DB.Model(&entities.Transaction{}).
		Where("member_id = ? AND status != ?", memberID, entities.TransactionReturned).
		Count(&openLoans).Error
	if err != nil {
		return nil, err
	}
	if openLoans >= int64(policy.MaxBooksPerUser) {
		return nil, ErrBorrowLimit
	}

	stock, err := d.GetStock(bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	if stock.Available <= 0 {
		return nil, ErrNoStock
	}

	now := time.Now()
	txn := &entities.Transaction{
		MemberID:   memberID,
		BookID:     bookID,
		BorrowDate: now.Format(dateLayout),
		DueDate:    now.AddDate(0, 0, policy.BorrowPeriodDays).Format(dateLayout),
		Status:     entities.TransactionBorrowed,
	}

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		stock.Available--
		if err := tx.Save(stock).Error; err != nil {
			return err
		}
		member.BorrowedCount++
		return tx.Save(member).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ReturnBook closes a loan, restores the copy to stock and charges a fine
// of fine-per-day for every full day past the due date.
func (d *Database) ReturnBook(transactionID uint) (*entities.Transaction, error) {
	var txn entities.Transaction
	if err := d.DB.First(&txn, transactionID).Error; err != nil {
		return nil, err
	}
	if txn.Status == entities.TransactionReturned {
		return nil, ErrAlreadyReturned
	}

	policy, err := d.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to load lending policy: %w", err)
	}

	now := time.Now()
	txn.ReturnDate = now.Format(dateLayout)
	txn.Status = entities.TransactionReturned
	txn.FineAmount = overdueFine(txn.DueDate, now, policy.FinePerDay)

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&txn).Error; err != nil {
			return err
		}

		var stock entities.Stock
		result := tx.Where("book_id = ?", txn.BookID).First(&stock)
		if result.Error == nil {
			if stock.Available < stock.Quantity {
				stock.Available++
			}
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}
		} else if result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}

		var member entities.Member
		if err := tx.First(&member, txn.MemberID).Error; err != nil {
			return err
		}
		if member.BorrowedCount > 0 {
			member.BorrowedCount--
		}
		return tx.Save(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// MarkOverdueTransactions flags open loans past their due date and
// returns how many rows changed.
func (d *Database) MarkOverdueTransactions() (int64, error) {
	today := time.Now().Format(dateLayout)
	result := d.DB.Model(&entities.Transaction{}).
		Where("status = ? AND due_date < ?", entities.TransactionBorrowed, today).
		Update("status", entities.TransactionOverdue)
	return result.RowsAffected, result.Error
}

func (d *Database) ListTransactions() ([]entities.Transaction, error) {
	var txns []entities.Transaction
	err := d.DB.Order("borrow_date DESC, id DESC").Find(&txns).Error
	return txns, err
}

func (d *Database) ListTransactionsForMember(memberID uint) ([]entities.Transaction, error) {
	var txns []entities.Transaction
	err := d.DB.Where("member_id = ?", memberID).
		Order("borrow_date DESC, id DESC").Find(&txns).Error
	return txns, err
}

func (d *Database) GetPolicy() (*entities.Policy, error) {
	var policy entities.Policy
	err := d.DB.First(&policy, 1).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (d *Database) SavePolicy(borrowPeriodDays, maxBooksPerUser int, finePerDay float64) (*entities.Policy, error) {
	policy, err := d.GetPolicy()
	if err != nil {
		return nil, err
	}
	policy.BorrowPeriodDays = borrowPeriodDays
	policy.MaxBooksPerUser = maxBooksPerUser
	policy.FinePerDay = finePerDay
	if err := d.DB.Save(policy).Error; err != nil {
		return nil, err
	}
	return policy, nil
}

func (d *Database) GetDashboardCounts() (DashboardCounts, error) {
	var counts DashboardCounts

	err := d.DB.Model(&entities.Stock{}).Count(&counts.StockedTitles).Error
	if err != nil {
		return counts, err
	}

	stock, err := d.ListStock()
	if err != nil {
		return counts, err
	}
	for _, s := range stock {
		counts.TotalCopies += s.Quantity
		counts.AvailableCopies += s.Available
	}

	err = d.DB.Model(&entities.Member{}).Count(&counts.TotalMembers).Error
	if err != nil {
		return counts, err
	}

	err = d.DB.Model(&entities.Transaction{}).
		Where("status != ?", entities.TransactionReturned).
		Count(&counts.ActiveLoans).Error
	return counts, err
}

// overdueFine charges per full day past the due date. Unparseable due
// dates charge nothing.
func overdueFine(dueDate string, returnedAt time.Time, finePerDay float64) float64 {
	due, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return 0
	}
	returned, err := time.Parse(dateLayout, returnedAt.Format(dateLayout))
	if err != nil {
		return 0
	}
	days := int(returned.Sub(due).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return math.Round(float64(days)*finePerDay*100) / 100
}
