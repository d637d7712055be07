package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/libriscore/libris/internal/catalog"
	"github.com/libriscore/libris/internal/entities"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books := controller.store.GetAllBooks()
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.store.GetBookByID(c.Param("id"))
	if err != nil {
		respondNotFound(c, "book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) AddBook(c *gin.Context) {
	var input catalog.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := controller.store.AddBook(input)
	if err != nil {
		var validationErr *catalog.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   validationErr.Error(),
				Details: gin.H{"field": validationErr.Field},
			})
			return
		}
		respondInternalError(c, err, "add book")
		return
	}
	respondCreated(c, book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	var patch catalog.BookPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := controller.store.UpdateBook(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	if !controller.store.DeleteBook(c.Param("id")) {
		respondNotFound(c, "book")
		return
	}
	respondSuccess(c, "book deleted")
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	filters := catalog.SearchFilters{
		Status:   entities.ReadingStatus(c.Query("status")),
		Category: c.Query("category"),
	}
	if raw := c.Query("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondBadRequest(c, "invalid min_rating")
			return
		}
		filters.MinRating = minRating
	}

	books := controller.store.SearchBooks(c.Query("q"), filters)
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetBooksByStatus(c *gin.Context) {
	status := entities.ReadingStatus(c.Param("status"))
	if !entities.IsValidStatus(status) {
		respondBadRequest(c, "invalid reading status")
		return
	}
	books := controller.store.GetBooksByStatus(status)
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetBooksByCategory(c *gin.Context) {
	books := controller.store.GetBooksByCategory(c.Param("category"))
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

type statusUpdateRequest struct {
	Status      entities.ReadingStatus `json:"status"`
	CurrentPage *int                   `json:"current_page"`
}

func (controller *BooksController) UpdateBookStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if !entities.IsValidStatus(req.Status) {
		respondBadRequest(c, "invalid reading status")
		return
	}

	book, err := controller.store.UpdateBookStatus(c.Param("id"), req.Status, req.CurrentPage)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book status")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

type ratingRequest struct {
	Rating float64 `json:"rating"`
	Review string  `json:"review"`
}

func (controller *BooksController) RateBook(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := controller.store.RateBook(c.Param("id"), req.Rating, req.Review)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "rate book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}
