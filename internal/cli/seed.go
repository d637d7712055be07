package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/libriscore/libris/internal/config"
	"github.com/libriscore/libris/internal/sample"
	"github.com/libriscore/libris/internal/storage"
)

// SeedCommand writes fresh sample data files for the book collection and
// the category list.
type SeedCommand struct {
	BooksPath      string
	CategoriesPath string
	Count          int
	Force          bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.BooksPath, "books", config.DefaultBooksPath, "Path to the book collection JSON file")
	fs.StringVar(&cmd.CategoriesPath, "categories", config.DefaultCategoriesPath, "Path to the category JSON file")
	fs.IntVar(&cmd.Count, "count", config.DefaultSampleBooks, "Number of sample books to generate")
	fs.BoolVar(&cmd.Force, "force", false, "Overwrite existing files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write sample book and category data files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Count <= 0 {
		return fmt.Errorf("-count must be positive")
	}

	return nil
}

func (cmd *SeedCommand) Run() error {
	for _, path := range []string{cmd.BooksPath, cmd.CategoriesPath} {
		if _, err := os.Stat(path); err == nil && !cmd.Force {
			return fmt.Errorf("%s already exists, use -force to overwrite", path)
		}
	}

	books := sample.Books(cmd.Count)
	if err := storage.WriteArray(cmd.BooksPath, books); err != nil {
		return fmt.Errorf("failed to write books: %w", err)
	}
	fmt.Printf("Wrote %d sample book(s) to %s\n", len(books), cmd.BooksPath)

	cats := sample.Categories()
	if err := storage.WriteArray(cmd.CategoriesPath, cats); err != nil {
		return fmt.Errorf("failed to write categories: %w", err)
	}
	fmt.Printf("Wrote %d categories to %s\n", len(cats), cmd.CategoriesPath)

	return nil
}
