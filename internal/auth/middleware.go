package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const subjectKey = "auth_subject"

// RoleEnsurer provisions a role record on first authenticated contact and
// refreshes lastLogin afterwards. Implemented by the role service.
type RoleEnsurer interface {
	EnsureRole(subjectID, email string)
}

// Middleware authenticates every request before any business logic runs:
// extract the bearer credential, verify it, ensure a role record exists.
// Missing or invalid credentials end the request with 401.
func Middleware(verifier Verifier, roles RoleEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		subject, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Str("path", c.FullPath()).Msg("Rejected bearer credential")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid authentication token",
			})
			return
		}

		roles.EnsureRole(subject.ID, subject.Email)

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// SubjectFrom returns the authenticated subject set by Middleware, or nil.
func SubjectFrom(c *gin.Context) *Subject {
	v, exists := c.Get(subjectKey)
	if !exists {
		return nil
	}
	subject, ok := v.(*Subject)
	if !ok {
		return nil
	}
	return subject
}
