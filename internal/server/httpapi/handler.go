package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/murof-net/auth/internal/common"
)

type registrationForm struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var form registrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := s.auth.Register(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already taken"})
			return
		}
		s.logger.Error(c.Request.Context(), "registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": result.Message, "email": result.Email})
}

func (s *Server) handleVerifyEmail(c *gin.Context) {
	err := s.auth.VerifyEmail(c.Request.Context(), c.Param("token"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Email verified, you can now login"})
	case errors.Is(err, common.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrWrongTokenKind),
		errors.Is(err, common.ErrMissingClaim):
		unauthorized(c, "Invalid token")
	default:
		s.logger.Error(c.Request.Context(), "email verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	pair, err := s.auth.Login(c.Request.Context(), form.Username, form.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			TokenType:    pair.TokenType,
		})
	case errors.Is(err, common.ErrInvalidCredentials):
		unauthorized(c, "Incorrect identifier or password")
	case errors.Is(err, common.ErrEmailNotVerified):
		unauthorized(c, "Email not verified")
	default:
		s.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	pair, err := s.auth.Refresh(c.Request.Context(), req.RefreshToken)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			TokenType:    pair.TokenType,
		})
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrWrongTokenKind),
		errors.Is(err, common.ErrMissingClaim):
		unauthorized(c, "Invalid refresh token")
	default:
		s.logger.Error(c.Request.Context(), "token refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func (s *Server) handleResetRequest(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	message, err := s.auth.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		s.logger.Error(c.Request.Context(), "password reset request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (s *Server) handleResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	err := s.auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password updated, you can now login"})
	case errors.Is(err, common.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrWrongTokenKind),
		errors.Is(err, common.ErrMissingClaim):
		unauthorized(c, "Invalid token")
	default:
		s.logger.Error(c.Request.Context(), "password reset failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	token := c.GetString(accessTokenKey)

	user, err := s.auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		unauthorized(c, "Could not validate credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username, "email": user.Email})
}
