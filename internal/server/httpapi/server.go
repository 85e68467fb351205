// Package httpapi exposes the authentication service over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/murof-net/auth/internal/logging"
	"github.com/murof-net/auth/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Server serves the /auth HTTP API.
type Server struct {
	address string
	logger  logging.Logger
	auth    *services.AuthService
}

// NewServer constructs a Server around the auth service.
func NewServer(address string, l logging.Logger, auth *services.AuthService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		auth:    auth,
	}
}

// Routes builds the gin engine with all auth endpoints registered.
func (s *Server) Routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	grp := router.Group("/auth")
	grp.POST("/register", s.handleRegister)
	grp.GET("/verify/:token", s.handleVerifyEmail)
	grp.POST("/token", s.handleLogin)
	grp.POST("/refresh", s.handleRefresh)
	grp.POST("/reset", s.handleResetRequest)
	grp.POST("/reset/confirm", s.handleResetConfirm)
	grp.GET("/me", s.bearerToken(), s.handleCurrentUser)

	return router
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
