package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// PostOnly answers every method but POST with 405 and "Allow: POST".
func PostOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			rejectMethod(c)
			return
		}
		c.Next()
	}
}

// PostOnlyNoMethod is installed with engine.NoMethod. gin's Any covers only the standard
// methods, so extension methods (PROPFIND, custom verbs) on the POST-only paths land here.
// Other paths keep gin's default 405.
func PostOnlyNoMethod(paths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(paths, c.Request.URL.Path) {
			rejectMethod(c)
			return
		}
		c.Next()
	}
}

func rejectMethod(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	abortText(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}
