package http

import (
	"github.com/gin-gonic/gin"

	"github.com/libriscore/libris/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	health := NewHealthController(cfg.AdminDB, cfg.Version)
	booksController := NewBooksController(cfg.BookStore)
	categoriesController := NewCategoriesController(cfg.CategoryStore, cfg.BookStore)
	statsController := NewStatsController(cfg.StatsProvider, cfg.BookStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Books API endpoints
	router.GET("/api/books", booksController.GetAllBooks)
	router.POST("/api/books", booksController.AddBook)
	router.GET("/api/books/search", booksController.SearchBooks)
	router.GET("/api/books/status/:status", booksController.GetBooksByStatus)
	router.GET("/api/books/category/:category", booksController.GetBooksByCategory)
	router.GET("/api/books/:id", booksController.GetBook)
	router.PATCH("/api/books/:id", booksController.UpdateBook)
	router.DELETE("/api/books/:id", booksController.DeleteBook)
	router.POST("/api/books/:id/status", booksController.UpdateBookStatus)
	router.POST("/api/books/:id/rating", booksController.RateBook)

	// Category endpoints
	router.GET("/api/categories", categoriesController.GetAllCategories)
	router.POST("/api/categories", categoriesController.CreateCategory)
	router.GET("/api/categories/stats", categoriesController.GetCategoryStats)
	router.GET("/api/categories/:name", categoriesController.GetCategory)
	router.PUT("/api/categories/:name", categoriesController.UpdateCategory)
	router.DELETE("/api/categories/:name", categoriesController.DeleteCategory)

	// Statistics endpoints
	router.GET("/api/stats", statsController.GetStatistics)
	router.GET("/api/stats/achievements", statsController.GetAchievements)
	router.GET("/api/stats/kpis", statsController.GetKPIs)
	router.GET("/api/stats/genres", statsController.GetGenreDistribution)

	// Admin console
	if cfg.AdminDB != nil && cfg.AuthService != nil && cfg.SessionManager != nil {
		adminController := NewAdminController(cfg.AdminDB, cfg.AuthService, cfg.SessionManager, cfg.AdminCatalog)

		router.POST("/api/admin/login", adminController.Login)

		protected := router.Group("/api/admin", cfg.SessionManager.RequireAdmin())
		protected.POST("/logout", adminController.Logout)
		protected.GET("/dashboard", adminController.GetDashboard)
		protected.GET("/stock", adminController.ListStock)
		protected.PUT("/stock/:bookID", adminController.SetStock)
		protected.DELETE("/stock/:bookID", adminController.DeleteStock)
		protected.GET("/members", adminController.ListMembers)
		protected.POST("/members", adminController.CreateMember)
		protected.DELETE("/members/:id", adminController.DeleteMember)
		protected.POST("/borrow", adminController.BorrowBook)
		protected.POST("/return", adminController.ReturnBook)
		protected.GET("/transactions", adminController.ListTransactions)
		protected.GET("/policy", adminController.GetPolicy)
		protected.PUT("/policy", adminController.UpdatePolicy)
		protected.POST("/import/csv", adminController.ImportCSV)
		protected.GET("/export/csv", adminController.ExportCSV)
	}

	return router
}
