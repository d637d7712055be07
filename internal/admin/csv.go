package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/libriscore/libris/internal/catalog"
	"github.com/libriscore/libris/internal/entities"
)

// Catalog is the slice of the book catalog the lending side needs.
type Catalog interface {
	GetAllBooks() []entities.Book
	GetBookByID(bookID string) (*entities.Book, error)
	GetBookByISBN(isbn string) (*entities.Book, error)
	AddBook(input catalog.BookInput) (*entities.Book, error)
}

// BookCSVRow represents a single row from a library inventory CSV file.
type BookCSVRow struct {
	Title           string
	Author          string
	ISBN            string
	Genre           string
	Publisher       string
	PublicationYear int
	Quantity        int
}

// ImportResult reports what an inventory import did.
type ImportResult struct {
	RowsProcessed int      `json:"rows_processed"`
	BooksCreated  int      `json:"books_created"`
	Duplicates    int      `json:"duplicates"`
	Errors        []string `json:"errors,omitempty"`
}

var exportHeader = []string{"title", "author", "isbn", "genre", "publisher", "year", "quantity", "available"}

// ParseBooksCSV parses a headered inventory CSV. Returns the parsed rows,
// per-line errors for rows that were skipped, and a fatal error when the
// file is unreadable as a whole.
func ParseBooksCSV(r io.Reader) ([]BookCSVRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	requiredHeaders := []string{"title", "author"}
	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	var rows []BookCSVRow
	var errors []string
	lineNum := 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errors = append(errors, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}

		row := BookCSVRow{
			Title:     getCSVValue(record, headerIndex, "title"),
			Author:    getCSVValue(record, headerIndex, "author"),
			ISBN:      getCSVValue(record, headerIndex, "isbn"),
			Genre:     getCSVValue(record, headerIndex, "genre"),
			Publisher: getCSVValue(record, headerIndex, "publisher"),
		}

		if row.Title == "" || row.Author == "" {
			errors = append(errors, fmt.Sprintf("Line %d: skipped - missing title or author", lineNum))
			continue
		}

		if v := getCSVValue(record, headerIndex, "publication_year"); v != "" {
			year, err := strconv.Atoi(v)
			if err != nil {
				errors = append(errors, fmt.Sprintf("Line %d: invalid publication_year %q", lineNum, v))
				continue
			}
			row.PublicationYear = year
		}

		row.Quantity = 1
		if v := getCSVValue(record, headerIndex, "quantity"); v != "" {
			quantity, err := strconv.Atoi(v)
			if err != nil || quantity < 0 {
				errors = append(errors, fmt.Sprintf("Line %d: invalid quantity %q", lineNum, v))
				continue
			}
			row.Quantity = quantity
		}

		rows = append(rows, row)
	}

	return rows, errors, nil
}

func getCSVValue(record []string, headerIndex map[string]int, header string) string {
	if idx, ok := headerIndex[header]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

// ImportBooksCSV reads an inventory CSV and loads it into the catalog and
// the stock table. Rows whose ISBN is already in the catalog are counted
// as duplicates and left untouched.
func (d *Database) ImportBooksCSV(r io.Reader, cat Catalog) (ImportResult, error) {
	rows, parseErrors, err := ParseBooksCSV(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Errors: parseErrors}
	for _, row := range rows {
		result.RowsProcessed++

		if row.ISBN != "" {
			if _, err := cat.GetBookByISBN(row.ISBN); err == nil {
				result.Duplicates++
				continue
			}
		}

		book, err := cat.AddBook(catalog.BookInput{
			Title:     row.Title,
			Author:    row.Author,
			ISBN:      row.ISBN,
			Genre:     row.Genre,
			Publisher: row.Publisher,
			Year:      row.PublicationYear,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.Title, err))
			continue
		}
		result.BooksCreated++

		if _, err := d.SetStock(book.ID, row.Quantity); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: failed to record stock: %v", row.Title, err))
		}
	}

	return result, nil
}

// ExportBooksCSV writes the full catalog joined with stock levels. Books
// without a stock row export with zero copies.
func (d *Database) ExportBooksCSV(w io.Writer, cat Catalog) (int, error) {
	stock, err := d.ListStock()
	if err != nil {
		return 0, fmt.Errorf("failed to load stock: %w", err)
	}
	byBookID := make(map[string]entities.Stock, len(stock))
	for _, s := range stock {
		byBookID[s.BookID] = s
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, err
	}

	written := 0
	for _, book := range cat.GetAllBooks() {
		s := byBookID[book.ID]
		record := []string{
			book.Title,
			book.Author,
			book.ISBN,
			book.Genre,
			book.Publisher,
			strconv.Itoa(book.Year),
			strconv.Itoa(s.Quantity),
			strconv.Itoa(s.Available),
		}
		if err := writer.Write(record); err != nil {
			return written, err
		}
		written++
	}

	writer.Flush()
	return written, writer.Error()
}
