package config

// Default paths for persisted data
const (
	// DefaultBooksPath is the default path for the book collection JSON file
	DefaultBooksPath = "./data/books_data.json"

	// DefaultCategoriesPath is the default path for the category JSON file
	DefaultCategoriesPath = "./data/categories.json"

	// DefaultAdminDatabasePath is the default path for the lending database
	DefaultAdminDatabasePath = "./data/library.db"
)

// DefaultSampleBooks is the number of sample books generated when the
// collection file is absent.
const DefaultSampleBooks = 10
