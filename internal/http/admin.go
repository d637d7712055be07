package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/libriscore/libris/internal/admin"
	"github.com/libriscore/libris/internal/auth"
)

// AdminController is the lending console: stock, members, loans, the
// lending policy and CSV inventory exchange. Every route except login
// sits behind the admin session middleware.
type AdminController struct {
	db       *admin.Database
	authSvc  *auth.Service
	sessions *auth.SessionManager
	catalog  admin.Catalog
}

func NewAdminController(db *admin.Database, authSvc *auth.Service, sessions *auth.SessionManager, catalog admin.Catalog) *AdminController {
	return &AdminController{
		db:       db,
		authSvc:  authSvc,
		sessions: sessions,
		catalog:  catalog,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (controller *AdminController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := controller.authSvc.Authenticate(req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
		return
	}

	if err := controller.sessions.CreateSession(c.Request, controller.authSvc.Username()); err != nil {
		respondInternalError(c, err, "create session")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "logged in",
		"username":   controller.authSvc.Username(),
		"csrf_token": auth.GetCSRFToken(c),
	})
}

func (controller *AdminController) Logout(c *gin.Context) {
	if err := controller.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "destroy session")
		return
	}
	respondSuccess(c, "logged out")
}

func (controller *AdminController) GetDashboard(c *gin.Context) {
	counts, err := controller.db.GetDashboardCounts()
	if err != nil {
		respondInternalError(c, err, "dashboard counts")
		return
	}
	c.IndentedJSON(http.StatusOK, counts)
}

func (controller *AdminController) ListStock(c *gin.Context) {
	stock, err := controller.db.ListStock()
	if err != nil {
		respondInternalError(c, err, "list stock")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"stock": stock, "count": len(stock)})
}

type stockRequest struct {
	Quantity int `json:"quantity"`
}

func (controller *AdminController) SetStock(c *gin.Context) {
	bookID := c.Param("bookID")
	if _, err := controller.catalog.GetBookByID(bookID); err != nil {
		respondNotFound(c, "book")
		return
	}

	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Quantity < 0 {
		respondBadRequest(c, "quantity must not be negative")
		return
	}

	stock, err := controller.db.SetStock(bookID, req.Quantity)
	if err != nil {
		respondInternalError(c, err, "set stock")
		return
	}
	c.IndentedJSON(http.StatusOK, stock)
}

func (controller *AdminController) DeleteStock(c *gin.Context) {
	if err := controller.db.DeleteStock(c.Param("bookID")); err != nil {
		respondInternalError(c, err, "delete stock")
		return
	}
	respondSuccess(c, "stock removed")
}

func (controller *AdminController) ListMembers(c *gin.Context) {
	members, err := controller.db.ListMembers()
	if err != nil {
		respondInternalError(c, err, "list members")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}

type memberRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func (controller *AdminController) CreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Username == "" {
		respondBadRequest(c, "username is required")
		return
	}

	member, err := controller.db.CreateMember(req.Username, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, admin.ErrDuplicateMember) {
			respondConflict(c, "username already registered")
			return
		}
		respondInternalError(c, err, "create member")
		return
	}
	respondCreated(c, member)
}

func (controller *AdminController) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid member id")
		return
	}
	if err := controller.db.DeleteMember(uint(id)); err != nil {
		respondInternalError(c, err, "delete member")
		return
	}
	respondSuccess(c, "member deleted")
}

type borrowRequest struct {
	MemberID uint   `json:"member_id"`
	BookID   string `json:"book_id"`
}

func (controller *AdminController) BorrowBook(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	txn, err := controller.db.BorrowBook(req.MemberID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrNoStock):
			respondConflict(c, "no copies available")
		case errors.Is(err, admin.ErrBorrowLimit):
			respondConflict(c, "member has reached the borrow limit")
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "member or stock")
		default:
			respondInternalError(c, err, "borrow book")
		}
		return
	}
	respondCreated(c, txn)
}

type returnRequest struct {
	TransactionID uint `json:"transaction_id"`
}

func (controller *AdminController) ReturnBook(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	txn, err := controller.db.ReturnBook(req.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrAlreadyReturned):
			respondConflict(c, "transaction already returned")
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "transaction")
		default:
			respondInternalError(c, err, "return book")
		}
		return
	}
	c.IndentedJSON(http.StatusOK, txn)
}

func (controller *AdminController) ListTransactions(c *gin.Context) {
	if _, err := controller.db.MarkOverdueTransactions(); err != nil {
		respondInternalError(c, err, "mark overdue transactions")
		return
	}
	txns, err := controller.db.ListTransactions()
	if err != nil {
		respondInternalError(c, err, "list transactions")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"transactions": txns, "count": len(txns)})
}

func (controller *AdminController) GetPolicy(c *gin.Context) {
	policy, err := controller.db.GetPolicy()
	if err != nil {
		respondInternalError(c, err, "get policy")
		return
	}
	c.IndentedJSON(http.StatusOK, policy)
}

type policyRequest struct {
	BorrowPeriodDays int     `json:"borrow_period_days"`
	MaxBooksPerUser  int     `json:"max_books_per_user"`
	FinePerDay       float64 `json:"fine_per_day"`
}

func (controller *AdminController) UpdatePolicy(c *gin.Context) {
	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.BorrowPeriodDays <= 0 || req.MaxBooksPerUser <= 0 || req.FinePerDay < 0 {
		respondBadRequest(c, "policy values out of range")
		return
	}

	policy, err := controller.db.SavePolicy(req.BorrowPeriodDays, req.MaxBooksPerUser, req.FinePerDay)
	if err != nil {
		respondInternalError(c, err, "save policy")
		return
	}
	c.IndentedJSON(http.StatusOK, policy)
}

func (controller *AdminController) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondInternalError(c, err, "open uploaded file")
		return
	}
	defer src.Close()

	result, err := controller.db.ImportBooksCSV(src, controller.catalog)
	if err != nil {
		respondBadRequest(c, "failed to parse CSV: "+err.Error())
		return
	}
	c.IndentedJSON(http.StatusOK, result)
}

func (controller *AdminController) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := controller.db.ExportBooksCSV(&buf, controller.catalog); err != nil {
		respondInternalError(c, err, "export CSV")
		return
	}

	filename := "library_export_" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
