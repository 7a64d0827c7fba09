package middleware

import (
	"audit-checklist/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InjectUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserKey).(string); ok && uid != "" {
			var user models.User
			if err := db.WithContext(c.Request.Context()).Where("id = ?", uid).Take(&user).Error; err == nil {
				c.Set("CurrentUser", user)
			}
		}

		c.Next()
	}
}
