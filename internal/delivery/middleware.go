package delivery

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionCookie carries the anonymous session id the cart is keyed by.
const SessionCookie = "market_session"

const (
	sessionKey = "session_id"
	userKey    = "user_id"
)

// Session reads the session cookie and mints a fresh UUID when the caller
// has none yet. Every request leaves with a session id in the context.
func Session(ttl time.Duration, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, int(ttl.Seconds()), "/", "", false, true)
			log.Debugf("Middleware: Issued new session ID %s", sessionID)
		}
		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

// RequireUser guards routes that mutate products. Authentication itself
// happens upstream; the authenticated user id arrives as a header.
func RequireUser(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			log.Warn("Middleware: X-User-ID header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(userKey, userID)
		c.Next()
	}
}

func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"remote_ip": c.ClientIP(),
		})
		entry.Info("Incoming request")

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		completedEntry := logger.WithFields(logrus.Fields{
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"latency_ms":  latency.Milliseconds(),
		})

		if statusCode >= 500 {
			completedEntry.Error("Request completed with server error")
		} else if statusCode >= 400 {
			completedEntry.Warn("Request completed with client error")
		} else {
			completedEntry.Info("Request completed successfully")
		}
	}
}
