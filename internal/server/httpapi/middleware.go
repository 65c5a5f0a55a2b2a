package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voiceviz/voiceviz-server/internal/common"
	"github.com/voiceviz/voiceviz-server/internal/server/auth"
	"github.com/voiceviz/voiceviz-server/internal/server/models"
)

// currentUserKey is the gin context key under which the authenticated user is
// stored for the duration of a single request.
const currentUserKey = "currentUser"

// unauthorizedDetail is the one message every auth-gate failure collapses to,
// so a caller cannot tell a bad signature from an expired token or a vanished
// user.
const unauthorizedDetail = "invalid or expired credentials"

// authRequired gates protected routes: it extracts the bearer token from the
// authorization header, verifies it and resolves the subject email to a user
// record. Any failure aborts the request with 401.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": unauthorizedDetail})
			return
		}

		subject, err := auth.GetSubjectFromToken(tokenString, s.jwtSecret)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "token rejected", "reason", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": unauthorizedDetail})
			return
		}

		user, err := s.users.GetByEmail(c.Request.Context(), subject)
		if err != nil {
			// covers the user having been deleted after token issuance
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": unauthorizedDetail})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// extractBearerToken parses an "Authorization: Bearer <token>" header value.
// The scheme match is case-insensitive.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerSchemePrefix) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// mustCurrentUser returns the user resolved by authRequired. It is only valid
// on routes behind the auth gate.
func mustCurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(currentUserKey)
	user, _ := v.(*models.User)
	return user
}
