package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const SessionUserKey = "user_id"

// must run after InjectUser
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("CurrentUser"); !ok {
			sess := sessions.Default(c)
			if sess.Get(SessionUserKey) != nil {
				// stale session for a removed user
				sess.Clear()
				_ = sess.Save()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"kind": "Unauthorized", "message": "authentication required"},
			})
			return
		}
		c.Next()
	}
}
