// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/utils"
)

// AdminRequired gates the admin screens on the session store. Page
// requests are sent to the login screen; fetch-style requests get a plain
// 403.
func AdminRequired(sess *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess.IsAdmin() {
			c.Next()
			return
		}

		if wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		utils.ForbiddenResponse(c, "")
		c.Abort()
	}
}

func wantsHTML(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
