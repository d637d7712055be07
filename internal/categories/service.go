// Package categories owns the Category collection and its persisted JSON
// mirror.
package categories

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/libriscore/libris/internal/entities"
	"github.com/libriscore/libris/internal/sample"
	"github.com/libriscore/libris/internal/storage"
)

var (
	// ErrNotFound is returned when no category matches the requested name.
	ErrNotFound = errors.New("category not found")
	// ErrDuplicate is returned when a create or rename would collide with
	// an existing category name (case-insensitive).
	ErrDuplicate = errors.New("category name already exists")
)

// BookLister is the slice of the catalog service the category service
// needs for book-count recomputation.
type BookLister interface {
	GetAllBooks() []entities.Book
}

// CategoryStats summarizes the category collection.
type CategoryStats struct {
	TotalCategories       int                 `json:"total_categories"`
	TotalBooksCategorized int                 `json:"total_books_categorized"`
	TopCategories         []entities.Category `json:"top_categories"`
}

// Service is the category collection. Book counts are a derived cache,
// only meaningful right after UpdateBookCounts.
type Service struct {
	mu         sync.RWMutex
	path       string
	categories []entities.Category
}

// NewService creates the category service backed by the JSON file at path
// and loads it, degrading to the sample categories on any load problem.
func NewService(path string) *Service {
	s := &Service{path: path}
	s.load()
	return s
}

func (s *Service) load() {
	cats, skipped, err := storage.ReadArray[entities.Category](s.path)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			log.Printf("Warning: could not load categories data: %v; falling back to sample data", err)
		}
		s.categories = sample.Categories()
		return
	}
	if skipped > 0 {
		log.Printf("Warning: skipped %d corrupt category record(s) in %s", skipped, s.path)
	}
	if len(cats) == 0 {
		s.categories = sample.Categories()
		return
	}
	s.categories = cats
}

func (s *Service) save() {
	if err := storage.WriteArray(s.path, s.categories); err != nil {
		log.Printf("Warning: could not save categories data: %v", err)
	}
}

// GetAllCategories returns a copy of the collection in creation order.
func (s *Service) GetAllCategories() []entities.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Category(nil), s.categories...)
}

// GetCategoryByName returns the category with the exact given name.
func (s *Service) GetCategoryByName(name string) (*entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.categories {
		if s.categories[i].Name == name {
			cat := s.categories[i]
			return &cat, nil
		}
	}
	return nil, ErrNotFound
}

// CreateCategory adds a new category. Names are unique case-insensitively.
func (s *Service) CreateCategory(name, color string) (*entities.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(name) {
		return nil, ErrDuplicate
	}

	cat := entities.Category{Name: name, Color: color}
	s.categories = append(s.categories, cat)
	s.save()
	return &cat, nil
}

// UpdateCategory renames and recolors an existing category. Renaming onto
// another category's name (case-insensitive) is rejected.
func (s *Service) UpdateCategory(oldName, newName, color string) (*entities.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].Name != oldName {
			continue
		}
		if newName != oldName && s.nameTaken(newName) {
			return nil, ErrDuplicate
		}
		s.categories[i].Name = newName
		s.categories[i].Color = color
		s.save()

		cat := s.categories[i]
		return &cat, nil
	}
	return nil, ErrNotFound
}

// DeleteCategory removes the named category, reporting whether a removal
// occurred. Stripping the name from affected books is the catalog
// service's RemoveCategory; callers invoke both together.
func (s *Service) DeleteCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].Name == name {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

// UpdateBookCounts recomputes every category's cached book count from the
// catalog's current collection: all counts reset to zero, then one
// increment per (book, membership) pair.
func (s *Service) UpdateBookCounts(books BookLister) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		s.categories[i].BookCount = 0
	}
	for _, book := range books.GetAllBooks() {
		for _, name := range book.Categories {
			for i := range s.categories {
				if s.categories[i].Name == name {
					s.categories[i].BookCount++
					break
				}
			}
		}
	}
}

// GetCategoryStats returns collection totals plus the five categories with
// the highest cached book counts.
func (s *Service) GetCategoryStats() CategoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := CategoryStats{TotalCategories: len(s.categories)}
	for _, c := range s.categories {
		stats.TotalBooksCategorized += c.BookCount
	}

	sorted := append([]entities.Category(nil), s.categories...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BookCount > sorted[j].BookCount
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	stats.TopCategories = sorted
	return stats
}

func (s *Service) nameTaken(name string) bool {
	for i := range s.categories {
		if strings.EqualFold(s.categories[i].Name, name) {
			return true
		}
	}
	return false
}
