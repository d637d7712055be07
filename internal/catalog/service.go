// Package catalog owns the authoritative in-memory Book collection and
// its persisted JSON mirror.
package catalog

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/libriscore/libris/internal/entities"
	"github.com/libriscore/libris/internal/id"
	"github.com/libriscore/libris/internal/sample"
	"github.com/libriscore/libris/internal/storage"
	"github.com/libriscore/libris/internal/validators"
)

// ErrNotFound is returned when no book matches the requested identifier.
var ErrNotFound = errors.New("book not found")

// ValidationError reports a rejected field on add.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BookInput carries the caller-supplied fields for a new book. Omitted
// fields take the record defaults.
type BookInput struct {
	Title       string                 `json:"title"`
	Author      string                 `json:"author"`
	Publisher   string                 `json:"publisher"`
	Genre       string                 `json:"genre"`
	ISBN        string                 `json:"isbn"`
	Year        int                    `json:"year"`
	Status      entities.ReadingStatus `json:"status"`
	CurrentPage int                    `json:"current_page"`
	TotalPages  int                    `json:"total_pages"`
	Rating      float64                `json:"rating"`
	Review      string                 `json:"review"`
	Categories  []string               `json:"categories"`
	CoverImage  string                 `json:"cover_image"`
	Description string                 `json:"description"`
	StartDate   string                 `json:"start_date"`
	FinishDate  string                 `json:"finish_date"`
	Notes       string                 `json:"notes"`
}

// BookPatch is a partial update. Nil fields are left untouched; unknown
// JSON fields are ignored on decode rather than treated as errors.
type BookPatch struct {
	Title       *string                 `json:"title"`
	Author      *string                 `json:"author"`
	Publisher   *string                 `json:"publisher"`
	Genre       *string                 `json:"genre"`
	ISBN        *string                 `json:"isbn"`
	Year        *int                    `json:"year"`
	Status      *entities.ReadingStatus `json:"status"`
	Progress    *int                    `json:"progress"`
	CurrentPage *int                    `json:"current_page"`
	TotalPages  *int                    `json:"total_pages"`
	Rating      *float64                `json:"rating"`
	Review      *string                 `json:"review"`
	Categories  *[]string               `json:"categories"`
	CoverImage  *string                 `json:"cover_image"`
	Description *string                 `json:"description"`
	StartDate   *string                 `json:"start_date"`
	FinishDate  *string                 `json:"finish_date"`
	Notes       *string                 `json:"notes"`
}

// SearchFilters narrows a search. Zero values (or "All") disable the
// corresponding filter; filters are ANDed together.
type SearchFilters struct {
	Status    entities.ReadingStatus
	Category  string
	MinRating float64
}

// Service is the book catalog. All operations run under a single lock;
// the backing file is rewritten in full on every mutation.
type Service struct {
	mu          sync.RWMutex
	path        string
	sampleBooks int
	books       []entities.Book
}

// NewService creates the catalog backed by the JSON file at path and loads
// it. A missing, unreadable or empty backing file degrades to sampleBooks
// generated sample records and never fails; zero disables the fallback.
func NewService(path string, sampleBooks int) *Service {
	s := &Service{path: path, sampleBooks: sampleBooks}
	s.load()
	return s
}

func (s *Service) load() {
	books, skipped, err := storage.ReadArray[entities.Book](s.path)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			log.Printf("Warning: could not load books data: %v; falling back to sample data", err)
		}
		s.books = sample.Books(s.sampleBooks)
		return
	}
	if skipped > 0 {
		log.Printf("Warning: skipped %d corrupt book record(s) in %s", skipped, s.path)
	}
	if len(books) == 0 {
		s.books = sample.Books(s.sampleBooks)
		return
	}
	for i := range books {
		books[i].Normalize()
	}
	s.books = books
}

// save rewrites the backing file. Write failures are logged and absorbed:
// the in-memory collection stays the source of truth for the session and
// a later successful save reconciles.
func (s *Service) save() {
	if err := storage.WriteArray(s.path, s.books); err != nil {
		log.Printf("Warning: failed to save books data: %v", err)
	}
}

// GetAllBooks returns a copy of the current collection in catalog order.
func (s *Service) GetAllBooks() []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyBooks(s.books)
}

// GetBookByID returns the book with the given identifier.
func (s *Service) GetBookByID(bookID string) (*entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == bookID {
			book := copyBook(s.books[i])
			return &book, nil
		}
	}
	return nil, ErrNotFound
}

// GetBookByISBN returns the first book with the given ISBN. Used by the
// CSV importer to skip duplicate rows.
func (s *Service) GetBookByISBN(isbn string) (*entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ISBN == isbn {
			book := copyBook(s.books[i])
			return &book, nil
		}
	}
	return nil, ErrNotFound
}

// AddBook validates the required fields, assigns a fresh identifier,
// applies defaults, appends and persists. Title and author are mandatory;
// everything else is advisory (a bad ISBN does not block the add).
func (s *Service) AddBook(input BookInput) (*entities.Book, error) {
	if ok, reason := validators.ValidateTitle(input.Title); !ok {
		return nil, &ValidationError{Field: "title", Reason: reason}
	}
	if ok, reason := validators.ValidateAuthor(input.Author); !ok {
		return nil, &ValidationError{Field: "author", Reason: reason}
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("assign book id: %w", err)
	}

	book := entities.Book{
		ID:          bookID,
		Title:       input.Title,
		Author:      input.Author,
		Publisher:   input.Publisher,
		Genre:       input.Genre,
		ISBN:        input.ISBN,
		Year:        input.Year,
		Status:      input.Status,
		CurrentPage: input.CurrentPage,
		TotalPages:  input.TotalPages,
		Rating:      input.Rating,
		Review:      input.Review,
		Categories:  input.Categories,
		CoverImage:  input.CoverImage,
		Description: input.Description,
		StartDate:   input.StartDate,
		FinishDate:  input.FinishDate,
		Notes:       input.Notes,
	}
	book.Normalize()
	book.Progress = calculateProgress(book.CurrentPage, book.TotalPages)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = append(s.books, book)
	s.save()

	added := copyBook(book)
	return &added, nil
}

// UpdateBook applies the non-nil patch fields to the identified book.
// Progress is recomputed whenever either page field was part of the patch.
func (s *Service) UpdateBook(bookID string, patch BookPatch) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID != bookID {
			continue
		}
		applyPatch(&s.books[i], patch)
		if patch.CurrentPage != nil || patch.TotalPages != nil {
			s.books[i].Progress = calculateProgress(s.books[i].CurrentPage, s.books[i].TotalPages)
		}
		s.books[i].Normalize()
		s.save()

		updated := copyBook(s.books[i])
		return &updated, nil
	}
	return nil, ErrNotFound
}

// DeleteBook removes the identified book. It reports whether a removal
// occurred; the backing file is only rewritten when it did.
func (s *Service) DeleteBook(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == bookID {
			s.books = append(s.books[:i], s.books[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

// SearchBooks returns the books matching the query and filters, in catalog
// order. A non-empty query is matched case-insensitively as a substring of
// title, author, genre or ISBN; an empty query matches everything.
func (s *Service) SearchBooks(query string, filters SearchFilters) []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	var results []entities.Book
	for i := range s.books {
		book := &s.books[i]

		if query != "" {
			if !strings.Contains(strings.ToLower(book.Title), query) &&
				!strings.Contains(strings.ToLower(book.Author), query) &&
				!strings.Contains(strings.ToLower(book.Genre), query) &&
				!strings.Contains(book.ISBN, query) {
				continue
			}
		}
		if filters.Status != "" && filters.Status != "All" && book.Status != filters.Status {
			continue
		}
		if filters.Category != "" && filters.Category != "All" && !book.HasCategory(filters.Category) {
			continue
		}
		if filters.MinRating > 0 && book.Rating < filters.MinRating {
			continue
		}
		results = append(results, copyBook(*book))
	}
	return results
}

// GetBooksByStatus returns the books in the given reading status.
func (s *Service) GetBooksByStatus(status entities.ReadingStatus) []entities.Book {
	return s.SearchBooks("", SearchFilters{Status: status})
}

// GetBooksByCategory returns the books that belong to the named category.
func (s *Service) GetBooksByCategory(category string) []entities.Book {
	return s.SearchBooks("", SearchFilters{Category: category})
}

// UpdateBookStatus transitions a book's reading status. Moving into
// Reading stamps the start date if unset; moving into Completed stamps the
// finish date if unset and, when the book has a page count, forces the
// current page to the end and progress to 100. An explicit currentPage
// overrides the transition's page handling and recomputes progress.
func (s *Service) UpdateBookStatus(bookID string, status entities.ReadingStatus, currentPage *int) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID != bookID {
			continue
		}
		book := &s.books[i]
		today := time.Now().Format("2006-01-02")
		pagesTouched := false

		book.Status = status
		switch {
		case status == entities.StatusReading && book.StartDate == "":
			book.StartDate = today
		case status == entities.StatusCompleted && book.FinishDate == "":
			book.FinishDate = today
			if book.TotalPages > 0 {
				book.CurrentPage = book.TotalPages
				pagesTouched = true
			}
		}
		if currentPage != nil {
			book.CurrentPage = *currentPage
			pagesTouched = true
		}
		if pagesTouched {
			book.Progress = calculateProgress(book.CurrentPage, book.TotalPages)
		}
		book.Normalize()
		s.save()

		updated := copyBook(*book)
		return &updated, nil
	}
	return nil, ErrNotFound
}

// RateBook sets a book's rating and review.
func (s *Service) RateBook(bookID string, rating float64, review string) (*entities.Book, error) {
	return s.UpdateBook(bookID, BookPatch{Rating: &rating, Review: &review})
}

// RemoveCategory strips the named category from every book that carries
// it, substituting the default category for books that would otherwise end
// up uncategorized. Returns the number of books changed. This is the
// cascade half of category deletion; callers run it right after removing
// the category itself.
func (s *Service) RemoveCategory(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.books {
		if !s.books[i].HasCategory(name) {
			continue
		}
		kept := make([]string, 0, len(s.books[i].Categories))
		for _, c := range s.books[i].Categories {
			if c != name {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			kept = []string{entities.DefaultCategory}
		}
		s.books[i].Categories = kept
		changed++
	}
	if changed > 0 {
		s.save()
	}
	return changed
}

// RenameCategory rewrites a category name on every book that carries it,
// keeping memberships intact across a category rename. Returns the number
// of books changed.
func (s *Service) RenameCategory(oldName, newName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.books {
		for j, c := range s.books[i].Categories {
			if c == oldName {
				s.books[i].Categories[j] = newName
				changed++
				break
			}
		}
	}
	if changed > 0 {
		s.save()
	}
	return changed
}

// GetStatistics computes the catalog aggregates in a single scan. The
// genre field is comma-separated; each token counts independently, and
// ties for favorite genre go to the genre encountered first.
func (s *Service) GetStatistics() entities.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := entities.Statistics{FavoriteGenre: "None", Genres: map[string]int{}}
	if len(s.books) == 0 {
		return stats
	}

	stats.TotalBooks = len(s.books)
	totalProgress := 0
	var genreOrder []string

	for i := range s.books {
		book := &s.books[i]
		switch book.Status {
		case entities.StatusCompleted:
			stats.CompletedBooks++
		case entities.StatusReading:
			stats.ReadingBooks++
		}
		totalProgress += book.Progress
		stats.TotalPages += book.TotalPages

		for _, genre := range strings.Split(book.Genre, ",") {
			g := strings.TrimSpace(genre)
			if g == "" {
				continue
			}
			if _, seen := stats.Genres[g]; !seen {
				genreOrder = append(genreOrder, g)
			}
			stats.Genres[g]++
		}
	}

	stats.AverageProgress = math.Round(float64(totalProgress)/float64(stats.TotalBooks)*10) / 10

	best := 0
	for _, g := range genreOrder {
		if stats.Genres[g] > best {
			best = stats.Genres[g]
			stats.FavoriteGenre = g
		}
	}
	return stats
}

// calculateProgress derives the progress percent from a page pair:
// round(100 * current / total) clamped to [0, 100], or 0 when the book has
// no page count.
func calculateProgress(current, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(current) * 100 / float64(total)))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func applyPatch(book *entities.Book, patch BookPatch) {
	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Publisher != nil {
		book.Publisher = *patch.Publisher
	}
	if patch.Genre != nil {
		book.Genre = *patch.Genre
	}
	if patch.ISBN != nil {
		book.ISBN = *patch.ISBN
	}
	if patch.Year != nil {
		book.Year = *patch.Year
	}
	if patch.Status != nil {
		book.Status = *patch.Status
	}
	if patch.Progress != nil {
		book.Progress = *patch.Progress
	}
	if patch.CurrentPage != nil {
		book.CurrentPage = *patch.CurrentPage
	}
	if patch.TotalPages != nil {
		book.TotalPages = *patch.TotalPages
	}
	if patch.Rating != nil {
		book.Rating = *patch.Rating
	}
	if patch.Review != nil {
		book.Review = *patch.Review
	}
	if patch.Categories != nil {
		book.Categories = *patch.Categories
	}
	if patch.CoverImage != nil {
		book.CoverImage = *patch.CoverImage
	}
	if patch.Description != nil {
		book.Description = *patch.Description
	}
	if patch.StartDate != nil {
		book.StartDate = *patch.StartDate
	}
	if patch.FinishDate != nil {
		book.FinishDate = *patch.FinishDate
	}
	if patch.Notes != nil {
		book.Notes = *patch.Notes
	}
}

func copyBook(b entities.Book) entities.Book {
	b.Categories = append([]string(nil), b.Categories...)
	return b
}

func copyBooks(books []entities.Book) []entities.Book {
	out := make([]entities.Book, len(books))
	for i, b := range books {
		out[i] = copyBook(b)
	}
	return out
}
