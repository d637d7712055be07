package entities

// ReadingStatus is the lifecycle state of a book in the catalog.
type ReadingStatus string

const (
	StatusNotStarted ReadingStatus = "Not Started"
	StatusReading    ReadingStatus = "Reading"
	StatusCompleted  ReadingStatus = "Completed"
	StatusOnHold     ReadingStatus = "On Hold"
)

// ValidStatuses lists every accepted reading status.
var ValidStatuses = []ReadingStatus{
	StatusNotStarted,
	StatusReading,
	StatusCompleted,
	StatusOnHold,
}

// IsValidStatus reports whether s is one of the known reading statuses.
func IsValidStatus(s ReadingStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// DefaultCategory is substituted whenever a book would end up with no
// categories at all.
const DefaultCategory = "General"

// Book is one catalog entry. The JSON field names are the on-disk format
// of the books backing file and must stay stable.
type Book struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Publisher   string        `json:"publisher"`
	Genre       string        `json:"genre"`
	ISBN        string        `json:"isbn"`
	Year        int           `json:"year"`
	Status      ReadingStatus `json:"status"`
	Progress    int           `json:"progress"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	Rating      float64       `json:"rating"`
	Review      string        `json:"review"`
	Categories  []string      `json:"categories"`
	CoverImage  string        `json:"cover_image"`
	Description string        `json:"description"`
	StartDate   string        `json:"start_date"`
	FinishDate  string        `json:"finish_date"`
	Notes       string        `json:"notes"`
}

// Normalize applies the record-level defaults and invariants: status falls
// back to "Not Started", the categories list is never empty, rating is
// clamped to [0.0, 5.0] and progress to [0, 100].
func (b *Book) Normalize() {
	if !IsValidStatus(b.Status) {
		b.Status = StatusNotStarted
	}
	if len(b.Categories) == 0 {
		b.Categories = []string{DefaultCategory}
	}
	if b.Rating < 0 {
		b.Rating = 0
	}
	if b.Rating > 5 {
		b.Rating = 5
	}
	if b.Progress < 0 {
		b.Progress = 0
	}
	if b.Progress > 100 {
		b.Progress = 100
	}
	if b.CurrentPage < 0 {
		b.CurrentPage = 0
	}
	if b.TotalPages < 0 {
		b.TotalPages = 0
	}
}

// HasCategory reports whether the book is a member of the named category.
func (b *Book) HasCategory(name string) bool {
	for _, c := range b.Categories {
		if c == name {
			return true
		}
	}
	return false
}
