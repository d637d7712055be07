package http

import (
	"github.com/libriscore/libris/internal/catalog"
	"github.com/libriscore/libris/internal/categories"
	"github.com/libriscore/libris/internal/entities"
	"github.com/libriscore/libris/internal/stats"
)

// BookStore is the catalog surface the book controller needs.
type BookStore interface {
	GetAllBooks() []entities.Book
	GetBookByID(bookID string) (*entities.Book, error)
	AddBook(input catalog.BookInput) (*entities.Book, error)
	UpdateBook(bookID string, patch catalog.BookPatch) (*entities.Book, error)
	DeleteBook(bookID string) bool
	SearchBooks(query string, filters catalog.SearchFilters) []entities.Book
	GetBooksByStatus(status entities.ReadingStatus) []entities.Book
	GetBooksByCategory(category string) []entities.Book
	UpdateBookStatus(bookID string, status entities.ReadingStatus, currentPage *int) (*entities.Book, error)
	RateBook(bookID string, rating float64, review string) (*entities.Book, error)
	RemoveCategory(name string) int
	RenameCategory(oldName, newName string) int
}

// CategoryStore is the category service surface the category controller
// needs.
type CategoryStore interface {
	GetAllCategories() []entities.Category
	GetCategoryByName(name string) (*entities.Category, error)
	CreateCategory(name, color string) (*entities.Category, error)
	UpdateCategory(oldName, newName, color string) (*entities.Category, error)
	DeleteCategory(name string) bool
	UpdateBookCounts(books categories.BookLister)
	GetCategoryStats() categories.CategoryStats
}

// StatsProvider computes statistics over book snapshots.
type StatsProvider interface {
	CalculateStatistics(books []entities.Book) entities.Statistics
	CheckAchievements(books []entities.Book) []entities.Achievement
	GetKPIData(books []entities.Book) []stats.KPI
	GetGenreDistribution(books []entities.Book) map[string]int
}
