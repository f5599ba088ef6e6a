package middleware

import (
	"net/http"

	"attritionlens/domain/core"
	"attritionlens/internal"
	apperrors "attritionlens/internal/errors"
	"attritionlens/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the resolved session
const SessionKey = "session"

// LoadSession resolves the :id path parameter to a live session and stores it
// on the context. Malformed ids are rejected with 400, unknown or expired ones
// with 404.
func LoadSession(manager *session.Manager) gin.HandlerFunc {
	logger := internal.DefaultLogger.With("LoadSession")
	return func(c *gin.Context) {
		id, err := core.ParseSessionID(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": apperrors.CodeInvalidInput, "message": err.Error()})
			return
		}

		s, err := manager.Get(id)
		if err != nil {
			logger.Debug("session %s: %v", id, err)
			c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.GetCode(err), "message": err.Error()})
			return
		}

		c.Set(SessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session stored by LoadSession.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}
