package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/models"
)

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// authRequired resolves the bearer token and stores the caller under
// common.SessionUserKey.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(h, common.BearerPrefix) {
			s.fail(c, common.ErrorUnauthenticated)
			return
		}
		u, err := s.users.Authenticate(c.Request.Context(), strings.TrimPrefix(h, common.BearerPrefix))
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Set(common.SessionUserKey, u)
		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	return c.MustGet(common.SessionUserKey).(models.User)
}
