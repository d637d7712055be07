package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libriscore/libris/internal/entities"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(filepath.Join(t.TempDir(), "books.json"), 10)
}

// newEmptyService returns a catalog with no books at all, bypassing the
// sample-data fallback.
func newEmptyService(t *testing.T) *Service {
	t.Helper()
	return NewService(filepath.Join(t.TempDir(), "books.json"), 0)
}

func TestNewService_FallsBackToSampleData(t *testing.T) {
	svc := newTestService(t)

	books := svc.GetAllBooks()
	assert.NotEmpty(t, books)
	for _, b := range books {
		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.Categories)
	}
}

func TestNewService_SampleBookCount(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "books.json"), 3)
	assert.Len(t, svc.GetAllBooks(), 3)

	none := NewService(filepath.Join(t.TempDir(), "books.json"), 0)
	assert.Empty(t, none.GetAllBooks())
}

func TestNewService_LoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	payload := `[
		{"id": "book-1", "title": "Dune", "author": "Frank Herbert", "status": "Reading", "total_pages": 412, "current_page": 100, "progress": 24, "categories": ["General"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	svc := NewService(path, 10)
	books := svc.GetAllBooks()
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, entities.StatusReading, books[0].Status)
}

func TestNewService_MalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	svc := NewService(path, 10)
	assert.NotEmpty(t, svc.GetAllBooks())
}

func TestNewService_AppliesDefaultsToLoadedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	payload := `[
		{"id": "book-1", "title": "Dune", "author": "Frank Herbert", "status": "Banana", "categories": []}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	svc := NewService(path, 10)
	books := svc.GetAllBooks()
	require.Len(t, books, 1)
	assert.Equal(t, entities.StatusNotStarted, books[0].Status)
	assert.Equal(t, []string{entities.DefaultCategory}, books[0].Categories)
}

func TestAddBook(t *testing.T) {
	svc := newEmptyService(t)

	book, err := svc.AddBook(BookInput{Title: "T", Author: "A", TotalPages: 100})
	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, entities.StatusNotStarted, book.Status)
	assert.Equal(t, []string{entities.DefaultCategory}, book.Categories)

	found, err := svc.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", found.Title)
	assert.Equal(t, "A", found.Author)
}

func TestAddBook_RequiresTitleAndAuthor(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddBook(BookInput{Author: "A"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = svc.AddBook(BookInput{Title: "T"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "author", verr.Field)
}

func TestAddBook_IdentifiersAreDistinct(t *testing.T) {
	svc := newEmptyService(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		book, err := svc.AddBook(BookInput{Title: "T", Author: "A"})
		require.NoError(t, err)
		assert.False(t, seen[book.ID])
		seen[book.ID] = true
	}
}

func TestGetBookByID_NotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetBookByID("book-does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBook_RecomputesProgress(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A", TotalPages: 300})
	require.NoError(t, err)

	current := 150
	updated, err := svc.UpdateBook(book.ID, BookPatch{CurrentPage: &current})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.CurrentPage)
	assert.Equal(t, 50, updated.Progress)

	// Rounding: 100 * 100 / 300 = 33.33 -> 33
	current = 100
	updated, err = svc.UpdateBook(book.ID, BookPatch{CurrentPage: &current})
	require.NoError(t, err)
	assert.Equal(t, 33, updated.Progress)

	// Rounding up: 200/300 = 66.67 -> 67
	current = 200
	updated, err = svc.UpdateBook(book.ID, BookPatch{CurrentPage: &current})
	require.NoError(t, err)
	assert.Equal(t, 67, updated.Progress)
}

func TestUpdateBook_ZeroTotalPagesMeansZeroProgress(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A"})
	require.NoError(t, err)

	current := 42
	updated, err := svc.UpdateBook(book.ID, BookPatch{CurrentPage: &current})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Progress)
}

func TestUpdateBook_NotFound(t *testing.T) {
	svc := newTestService(t)
	title := "X"
	_, err := svc.UpdateBook("missing", BookPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBook(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A"})
	require.NoError(t, err)

	assert.True(t, svc.DeleteBook(book.ID))

	_, err = svc.GetBookByID(book.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBook_MissingLeavesCollectionUnchanged(t *testing.T) {
	svc := newTestService(t)
	before := len(svc.GetAllBooks())

	assert.False(t, svc.DeleteBook("missing"))
	assert.Len(t, svc.GetAllBooks(), before)
}

func TestSearchBooks_EmptyQueryReturnsAllInOrder(t *testing.T) {
	svc := newTestService(t)
	all := svc.GetAllBooks()

	results := svc.SearchBooks("", SearchFilters{})
	require.Len(t, results, len(all))
	for i := range all {
		assert.Equal(t, all[i].ID, results[i].ID)
	}
}

func TestSearchBooks_MatchesTitleAuthorGenreISBN(t *testing.T) {
	svc := newEmptyService(t)
	_, err := svc.AddBook(BookInput{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Classic", ISBN: "9780743273565"})
	require.NoError(t, err)
	_, err = svc.AddBook(BookInput{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", ISBN: "9780441013593"})
	require.NoError(t, err)

	assert.Len(t, svc.SearchBooks("gatsby", SearchFilters{}), 1)
	assert.Len(t, svc.SearchBooks("HERBERT", SearchFilters{}), 1)
	assert.Len(t, svc.SearchBooks("classic", SearchFilters{}), 1)
	assert.Len(t, svc.SearchBooks("9780441013593", SearchFilters{}), 1)
	assert.Empty(t, svc.SearchBooks("tolstoy", SearchFilters{}))
}

func TestSearchBooks_FiltersAreANDed(t *testing.T) {
	svc := newEmptyService(t)
	_, err := svc.AddBook(BookInput{Title: "A", Author: "X", Status: entities.StatusCompleted, Rating: 4.5, Categories: []string{"Favorites"}})
	require.NoError(t, err)
	_, err = svc.AddBook(BookInput{Title: "B", Author: "X", Status: entities.StatusCompleted, Rating: 2.0})
	require.NoError(t, err)
	_, err = svc.AddBook(BookInput{Title: "C", Author: "X", Status: entities.StatusReading, Rating: 5.0})
	require.NoError(t, err)

	completed := svc.SearchBooks("", SearchFilters{Status: entities.StatusCompleted})
	assert.Len(t, completed, 2)

	highRatedCompleted := svc.SearchBooks("", SearchFilters{Status: entities.StatusCompleted, MinRating: 4.0})
	require.Len(t, highRatedCompleted, 1)
	assert.Equal(t, "A", highRatedCompleted[0].Title)

	favorites := svc.SearchBooks("", SearchFilters{Category: "Favorites"})
	require.Len(t, favorites, 1)
	assert.Equal(t, "A", favorites[0].Title)
}

func TestSearchBooks_AllDisablesFilter(t *testing.T) {
	svc := newTestService(t)
	all := svc.GetAllBooks()

	results := svc.SearchBooks("", SearchFilters{Status: "All", Category: "All"})
	assert.Len(t, results, len(all))
}

func TestUpdateBookStatus_CompletedForcesPages(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A", TotalPages: 300})
	require.NoError(t, err)

	updated, err := svc.UpdateBookStatus(book.ID, entities.StatusCompleted, nil)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, updated.Status)
	assert.Equal(t, 300, updated.CurrentPage)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, time.Now().Format("2006-01-02"), updated.FinishDate)
}

func TestUpdateBookStatus_ReadingStampsStartDateOnce(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A", StartDate: "2020-01-01"})
	require.NoError(t, err)

	updated, err := svc.UpdateBookStatus(book.ID, entities.StatusReading, nil)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", updated.StartDate)

	fresh, err := svc.AddBook(BookInput{Title: "T2", Author: "A"})
	require.NoError(t, err)
	updated, err = svc.UpdateBookStatus(fresh.ID, entities.StatusReading, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), updated.StartDate)
}

func TestUpdateBookStatus_ExplicitCurrentPageOverrides(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A", TotalPages: 200})
	require.NoError(t, err)

	page := 50
	updated, err := svc.UpdateBookStatus(book.ID, entities.StatusReading, &page)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.CurrentPage)
	assert.Equal(t, 25, updated.Progress)
}

func TestUpdateBookStatus_NotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UpdateBookStatus("missing", entities.StatusReading, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBookStatus_ConcurrentTransitions(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A", TotalPages: 100})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		status := entities.StatusReading
		if i%2 == 1 {
			status = entities.StatusCompleted
		}
		wg.Add(1)
		go func(s entities.ReadingStatus) {
			defer wg.Done()
			_, err := svc.UpdateBookStatus(book.ID, s, nil)
			assert.NoError(t, err)
		}(status)
	}
	wg.Wait()

	final, err := svc.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.True(t, entities.IsValidStatus(final.Status))
	assert.Equal(t, time.Now().Format("2006-01-02"), final.FinishDate)
}

func TestRateBook(t *testing.T) {
	svc := newEmptyService(t)
	book, err := svc.AddBook(BookInput{Title: "T", Author: "A"})
	require.NoError(t, err)

	updated, err := svc.RateBook(book.ID, 4.5, "Loved it")
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, "Loved it", updated.Review)
}

func TestRemoveCategory(t *testing.T) {
	svc := newEmptyService(t)
	only, err := svc.AddBook(BookInput{Title: "T1", Author: "A", Categories: []string{"SciFi"}})
	require.NoError(t, err)
	both, err := svc.AddBook(BookInput{Title: "T2", Author: "A", Categories: []string{"SciFi", "Favorites"}})
	require.NoError(t, err)
	other, err := svc.AddBook(BookInput{Title: "T3", Author: "A", Categories: []string{"Favorites"}})
	require.NoError(t, err)

	changed := svc.RemoveCategory("SciFi")
	assert.Equal(t, 2, changed)

	b, err := svc.GetBookByID(only.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entities.DefaultCategory}, b.Categories)

	b, err = svc.GetBookByID(both.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Favorites"}, b.Categories)

	b, err = svc.GetBookByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Favorites"}, b.Categories)
}

func TestRenameCategory(t *testing.T) {
	svc := newEmptyService(t)
	tagged, err := svc.AddBook(BookInput{Title: "T1", Author: "A", Categories: []string{"SciFi", "Favorites"}})
	require.NoError(t, err)
	other, err := svc.AddBook(BookInput{Title: "T2", Author: "A", Categories: []string{"Favorites"}})
	require.NoError(t, err)

	changed := svc.RenameCategory("SciFi", "Science Fiction")
	assert.Equal(t, 1, changed)

	b, err := svc.GetBookByID(tagged.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Science Fiction", "Favorites"}, b.Categories)

	b, err = svc.GetBookByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Favorites"}, b.Categories)

	assert.Zero(t, svc.RenameCategory("Missing", "Whatever"))
}

func TestGetBookByISBN(t *testing.T) {
	svc := newEmptyService(t)
	added, err := svc.AddBook(BookInput{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"})
	require.NoError(t, err)

	found, err := svc.GetBookByISBN("9780441013593")
	require.NoError(t, err)
	assert.Equal(t, added.ID, found.ID)

	_, err = svc.GetBookByISBN("9780000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStatistics_EmptyCatalog(t *testing.T) {
	svc := newEmptyService(t)

	stats := svc.GetStatistics()
	assert.Zero(t, stats.TotalBooks)
	assert.Zero(t, stats.TotalPages)
	assert.Equal(t, "None", stats.FavoriteGenre)
}

func TestGetStatistics(t *testing.T) {
	svc := newEmptyService(t)
	_, err := svc.AddBook(BookInput{Title: "A", Author: "X", Genre: "Classic, Fiction", Status: entities.StatusCompleted, TotalPages: 100, CurrentPage: 100})
	require.NoError(t, err)
	_, err = svc.AddBook(BookInput{Title: "B", Author: "X", Genre: "Fiction", Status: entities.StatusReading, TotalPages: 200, CurrentPage: 100})
	require.NoError(t, err)

	stats := svc.GetStatistics()
	assert.Equal(t, 2, stats.TotalBooks)
	assert.Equal(t, 1, stats.CompletedBooks)
	assert.Equal(t, 1, stats.ReadingBooks)
	assert.Equal(t, 300, stats.TotalPages)
	assert.Equal(t, 2, stats.Genres["Fiction"])
	assert.Equal(t, 1, stats.Genres["Classic"])
	assert.Equal(t, "Fiction", stats.FavoriteGenre)
	assert.InDelta(t, 75.0, stats.AverageProgress, 0.01)
}

func TestGetStatistics_FavoriteGenreTieGoesToFirstEncountered(t *testing.T) {
	svc := newEmptyService(t)
	_, err := svc.AddBook(BookInput{Title: "A", Author: "X", Genre: "Classic"})
	require.NoError(t, err)
	_, err = svc.AddBook(BookInput{Title: "B", Author: "X", Genre: "Fantasy"})
	require.NoError(t, err)

	stats := svc.GetStatistics()
	assert.Equal(t, "Classic", stats.FavoriteGenre)
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")

	svc := NewService(path, 0)
	added, err := svc.AddBook(BookInput{Title: "Persisted", Author: "A", TotalPages: 10})
	require.NoError(t, err)

	reloaded := NewService(path, 0)
	books := reloaded.GetAllBooks()
	require.Len(t, books, 1)
	assert.Equal(t, added.ID, books[0].ID)
	assert.Equal(t, "Persisted", books[0].Title)
}
