package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voiceviz/voiceviz-server/internal/common"
	"github.com/voiceviz/voiceviz-server/internal/server/models"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type queryRecordRequest struct {
	QueryExe string `json:"query_exe" binding:"required"`
}

type queryResponse struct {
	QueryID   string    `json:"query_id"`
	QueryExe  string    `json:"query_exe"`
	Timestamp time.Time `json:"timestamp"`
}

func toQueryResponse(e *models.QueryHistoryEntry) queryResponse {
	return queryResponse{QueryID: e.ID, QueryExe: e.QueryText, Timestamp: e.CreatedAt}
}

func (s *HTTPServer) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Email, req.UserName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid email address"})
		case errors.Is(err, common.ErrorDomainRejected):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "email domain cannot receive mail"})
		case errors.Is(err, common.ErrorConflict):
			// one message regardless of which unique field collided
			c.JSON(http.StatusBadRequest, gin.H{"detail": "email or username already registered"})
		default:
			s.logger.Error(c.Request.Context(), "signup failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		}
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"email":   req.Email,
	})
}

// login accepts an OAuth2-style password form: the "username" field carries
// the email.
func (s *HTTPServer) login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid email or password"})
		return
	}

	issue, err := s.users.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid email or password"})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": issue.AccessToken,
		"token_type":   issue.TokenType,
		"username":     issue.UserName,
	})
}

func (s *HTTPServer) currentUser(c *gin.Context) {
	user := mustCurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.UserName,
	})
}

func (s *HTTPServer) queryHistory(c *gin.Context) {
	user := mustCurrentUser(c)

	entries, err := s.queries.History(c.Request.Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "history lookup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	out := make([]queryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toQueryResponse(e))
	}

	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) recordQuery(c *gin.Context) {
	user := mustCurrentUser(c)

	var req queryRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	entry, err := s.queries.Record(c.Request.Context(), user.ID, req.QueryExe)
	if err != nil {
		s.logger.Error(c.Request.Context(), "query record failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toQueryResponse(entry))
}
