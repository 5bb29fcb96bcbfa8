// Package mockapi is an in-memory stand-in for the product REST API.
// It backs the unit tests of the client, the contract runner and the
// API fixtures, so they run without a deployed product.
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/routes"
)

// InvalidCredentials is the detail returned for a failed login.
const InvalidCredentials = "Invalid username/email and/or password."

// Account is a login the fake API accepts.
type Account struct {
	Username string
	Password string
	User     models.User
}

// Server holds the fake API state.
type Server struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger

	mu       sync.RWMutex
	accounts map[string]Account
	users    map[int64]models.User
	contacts map[int64]models.Contact
	nextID   int64

	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAccount registers an extra login.
func WithAccount(username, password string) Option {
	return func(s *Server) { s.addAccount(username, password) }
}

// New returns a server with an admin/password account. Every account is
// also listed as a user.
func New(opts ...Option) *Server {
	s := &Server{
		secret:   []byte("mockapi-signing-key"),
		tokenTTL: time.Hour,
		now:      time.Now,
		logger:   zap.NewNop(),
		accounts: make(map[string]Account),
		users:    make(map[int64]models.User),
		contacts: make(map[int64]models.Contact),
	}
	s.addAccount("admin", "password")
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) addAccount(username, password string) {
	s.nextID++
	u := models.NewUser()
	u.ID = s.nextID
	u.Username = username
	u.Email = username + "@example.com"
	u.FirstName = username
	u.LastName = "Account"
	u.CreatedAt = s.stamp()
	s.accounts[username] = Account{Username: username, Password: password, User: u}
	s.users[u.ID] = u
}

// Handler returns the HTTP handler serving the API under /api.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	api := r.Group(routes.APIBase)
	{
		api.POST("/"+routes.APILogin, s.HandleLogin)
		api.POST("/"+routes.APIRegister, s.HandleRegister)

		authed := api.Group("", s.requireAuth())
		authed.POST("/"+routes.APIRefreshToken, s.HandleRefresh)

		authed.GET("/users", s.HandleListUsers)
		authed.GET("/users/:id", s.HandleGetUser)
		authed.POST("/users", s.HandleCreateUser)
		authed.PUT("/users/:id", s.HandleUpdateUser)
		authed.DELETE("/users/:id", s.HandleDeleteUser)

		authed.GET("/contacts", s.HandleListContacts)
		authed.GET("/contacts/:id", s.HandleGetContact)
		authed.POST("/contacts", s.HandleCreateContact)
		authed.PUT("/contacts/:id", s.HandleUpdateContact)
		authed.DELETE("/contacts/:id", s.HandleDeleteContact)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("mockapi request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// UserCount and ContactCount expose the store size to tests.
func (s *Server) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Server) ContactCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

func apiError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, models.APIError{Detail: detail, StatusCode: status})
}
