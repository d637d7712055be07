package http

import (
	"github.com/libriscore/libris/internal/admin"
	"github.com/libriscore/libris/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. This replaces a long parameter list in
// NewRouter for better maintainability.
type RouterConfig struct {
	// Core services
	BookStore     BookStore
	CategoryStore CategoryStore
	StatsProvider StatsProvider

	// Lending console
	AdminDB      *admin.Database
	AdminCatalog admin.Catalog

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}
