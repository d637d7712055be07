package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/libriscore/libris/internal/admin"
	"github.com/libriscore/libris/internal/catalog"
	"github.com/libriscore/libris/internal/config"
)

// ExportCSVCommand writes the full catalog joined with stock levels to a
// CSV file, or to stdout when no output path is given.
type ExportCSVCommand struct {
	OutputPath string
	BooksPath  string
	DBPath     string
}

func NewExportCSVCommand() *ExportCSVCommand {
	return &ExportCSVCommand{}
}

func (cmd *ExportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-csv", flag.ExitOnError)

	fs.StringVar(&cmd.OutputPath, "output", "", "Output CSV path (defaults to stdout)")
	fs.StringVar(&cmd.BooksPath, "books", config.DefaultBooksPath, "Path to the book collection JSON file")
	fs.StringVar(&cmd.DBPath, "db", config.DefaultAdminDatabasePath, "Path to the lending database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-csv [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export the book collection with stock levels as CSV.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportCSVCommand) Run() error {
	books := catalog.NewService(cmd.BooksPath, config.DefaultSampleBooks)

	db, err := admin.NewDatabase(cmd.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize lending database: %w", err)
	}
	defer db.Close()

	var out io.Writer = os.Stdout
	if cmd.OutputPath != "" {
		file, err := os.Create(cmd.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	written, err := db.ExportBooksCSV(out, books)
	if err != nil {
		return fmt.Errorf("failed to export CSV: %w", err)
	}

	if cmd.OutputPath != "" {
		fmt.Printf("Exported %d book(s) to %s\n", written, cmd.OutputPath)
	}
	return nil
}
