package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/libriscore/libris/internal/admin"
	"github.com/libriscore/libris/internal/catalog"
	"github.com/libriscore/libris/internal/config"
)

// ImportCSVCommand loads a headered inventory CSV into the catalog and
// the lending database.
type ImportCSVCommand struct {
	FilePath  string
	BooksPath string
	DBPath    string
	Verbose   bool
	DryRun    bool
}

func NewImportCSVCommand() *ImportCSVCommand {
	return &ImportCSVCommand{}
}

func (cmd *ImportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-csv", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the inventory CSV file (required)")
	fs.StringVar(&cmd.BooksPath, "books", config.DefaultBooksPath, "Path to the book collection JSON file")
	fs.StringVar(&cmd.DBPath, "db", config.DefaultAdminDatabasePath, "Path to the lending database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and report without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-csv -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import an inventory CSV into the book collection and stock table.\n\n")
		fmt.Fprintf(os.Stderr, "Expected columns: title, author, isbn, genre, publisher,\n")
		fmt.Fprintf(os.Stderr, "publication_year, quantity. Only title and author are required.\n")
		fmt.Fprintf(os.Stderr, "Rows whose ISBN is already in the collection are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCSVCommand) Run() error {
	fmt.Println("Inventory Import")
	fmt.Println("================")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	fmt.Printf("File: %s\n", cmd.FilePath)

	if cmd.DryRun {
		rows, parseErrors, err := admin.ParseBooksCSV(file)
		if err != nil {
			return fmt.Errorf("failed to parse CSV: %w", err)
		}
		fmt.Printf("Parsed %d row(s), %d skipped\n", len(rows), len(parseErrors))
		if cmd.Verbose {
			for _, row := range rows {
				fmt.Printf("  -> %q by %s (x%d)\n", row.Title, row.Author, row.Quantity)
			}
			for _, msg := range parseErrors {
				fmt.Printf("  [SKIP] %s\n", msg)
			}
		}
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DBPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	books := catalog.NewService(cmd.BooksPath, config.DefaultSampleBooks)

	db, err := admin.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize lending database: %w", err)
	}
	defer db.Close()

	result, err := db.ImportBooksCSV(file, books)
	if err != nil {
		return fmt.Errorf("failed to import CSV: %w", err)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Rows processed: %d\n", result.RowsProcessed)
	fmt.Printf("Books created:  %d\n", result.BooksCreated)
	fmt.Printf("Duplicates:     %d\n", result.Duplicates)

	if len(result.Errors) > 0 {
		fmt.Printf("\n%d problem(s) occurred:\n", len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Printf("  [ERROR] %s\n", msg)
		}
	}

	fmt.Println("\nImport complete!")
	return nil
}
