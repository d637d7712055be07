package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libriscore/libris/internal/catalog"
	"github.com/libriscore/libris/internal/entities"
)

func setupCatalog(t *testing.T) *catalog.Service {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return catalog.NewService(filepath.Join(t.TempDir(), "books.json"), 0)
}

func booksRouter(svc *catalog.Service) *gin.Engine {
	controller := NewBooksController(svc)

	router := gin.New()
	router.GET("/api/books", controller.GetAllBooks)
	router.POST("/api/books", controller.AddBook)
	router.GET("/api/books/search", controller.SearchBooks)
	router.GET("/api/books/status/:status", controller.GetBooksByStatus)
	router.GET("/api/books/:id", controller.GetBook)
	router.PATCH("/api/books/:id", controller.UpdateBook)
	router.DELETE("/api/books/:id", controller.DeleteBook)
	router.POST("/api/books/:id/status", controller.UpdateBookStatus)
	router.POST("/api/books/:id/rating", controller.RateBook)
	return router
}

func addTestBook(t *testing.T, svc *catalog.Service, title, author string) *entities.Book {
	t.Helper()
	book, err := svc.AddBook(catalog.BookInput{Title: title, Author: author, TotalPages: 100})
	require.NoError(t, err)
	return book
}

func TestBooksController_GetAllBooks(t *testing.T) {
	t.Run("returns empty list when no books", func(t *testing.T) {
		router := booksRouter(setupCatalog(t))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, float64(0), response["count"])
	})

	t.Run("returns books with count", func(t *testing.T) {
		svc := setupCatalog(t)
		addTestBook(t, svc, "Book 1", "Author 1")
		addTestBook(t, svc, "Book 2", "Author 2")
		router := booksRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, float64(2), response["count"])
	})
}

func TestBooksController_AddBook(t *testing.T) {
	t.Run("creates a book", func(t *testing.T) {
		router := booksRouter(setupCatalog(t))

		body := `{"title": "Dune", "author": "Frank Herbert", "genre": "Science Fiction"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var book entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.Equal(t, "Dune", book.Title)
		assert.NotEmpty(t, book.ID)
		assert.Equal(t, entities.StatusNotStarted, book.Status)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		router := booksRouter(setupCatalog(t))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", strings.NewReader(`{"author": "Nobody"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title")
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		router := booksRouter(setupCatalog(t))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_GetBook(t *testing.T) {
	svc := setupCatalog(t)
	book := addTestBook(t, svc, "Dune", "Frank Herbert")
	router := booksRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/books/"+book.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/books/missing", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksController_UpdateBook(t *testing.T) {
	svc := setupCatalog(t)
	book := addTestBook(t, svc, "Dune", "Frank Herbert")
	router := booksRouter(svc)

	body := `{"current_page": 50}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/books/"+book.ID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 50, updated.CurrentPage)
	assert.Equal(t, 50, updated.Progress)
}

func TestBooksController_DeleteBook(t *testing.T) {
	svc := setupCatalog(t)
	book := addTestBook(t, svc, "Dune", "Frank Herbert")
	router := booksRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/books/"+book.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/books/"+book.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksController_SearchBooks(t *testing.T) {
	svc := setupCatalog(t)
	addTestBook(t, svc, "Dune", "Frank Herbert")
	addTestBook(t, svc, "Emma", "Jane Austen")
	router := booksRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/books/search?q=dune", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/books/search?q=dune&min_rating=oops", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksController_GetBooksByStatus(t *testing.T) {
	svc := setupCatalog(t)
	addTestBook(t, svc, "Dune", "Frank Herbert")
	router := booksRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/books/status/Not%20Started", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/books/status/Sideways", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksController_UpdateBookStatus(t *testing.T) {
	svc := setupCatalog(t)
	book := addTestBook(t, svc, "Dune", "Frank Herbert")
	router := booksRouter(svc)

	body := `{"status": "Completed"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/books/"+book.ID+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, entities.StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	assert.NotEmpty(t, updated.FinishDate)
}

func TestBooksController_RateBook(t *testing.T) {
	svc := setupCatalog(t)
	book := addTestBook(t, svc, "Dune", "Frank Herbert")
	router := booksRouter(svc)

	body := `{"rating": 4.5, "review": "A classic"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/books/"+book.ID+"/rating", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.InDelta(t, 4.5, updated.Rating, 0.001)
	assert.Equal(t, "A classic", updated.Review)
}
