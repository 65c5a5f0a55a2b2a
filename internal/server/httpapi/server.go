// Package httpapi exposes the server's HTTP surface: registration, login,
// the current-user endpoint and the per-user query history, with a bearer-token
// auth gate on the protected routes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/voiceviz/voiceviz-server/internal/logging"
	"github.com/voiceviz/voiceviz-server/internal/server/models"
	"github.com/voiceviz/voiceviz-server/internal/server/services"
)

// UserProvider is the slice of the user service the HTTP layer needs.
type UserProvider interface {
	Register(ctx context.Context, email, userName, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenIssue, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// QueryProvider is the slice of the query service the HTTP layer needs.
type QueryProvider interface {
	Record(ctx context.Context, userID, queryText string) (*models.QueryHistoryEntry, error)
	History(ctx context.Context, userID string) ([]*models.QueryHistoryEntry, error)
}

type HTTPServer struct {
	address   string
	engine    *gin.Engine
	logger    logging.Logger
	users     UserProvider
	queries   QueryProvider
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us UserProvider, qs QueryProvider, secretKey string) *HTTPServer {
	s := &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		queries:   qs,
		jwtSecret: []byte(secretKey),
	}
	s.engine = s.buildEngine()
	return s
}

func (s *HTTPServer) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	engine.Use(cors.New(corsConfig))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	engine.POST("/signup/", s.signup)
	engine.POST("/login/", s.login)

	protected := engine.Group("/")
	protected.Use(s.authRequired())
	{
		protected.GET("/users/me", s.currentUser)
		protected.GET("/query-history/", s.queryHistory)
		protected.POST("/query-history/", s.recordQuery)
	}

	return engine
}

// Handler exposes the configured engine, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
