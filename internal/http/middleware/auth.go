// README: Bearer-token auth middleware backed by Firebase ID tokens.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/infra"
)

const ctxKeyUID = "caller_uid"

// Auth rejects requests without a valid "Authorization: Bearer <id token>" header with 401.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		idToken, ok := strings.CutPrefix(header, "Bearer ")
		idToken = strings.TrimSpace(idToken)
		if !ok || idToken == "" {
			abortText(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil || token == nil {
			abortText(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		c.Set(ctxKeyUID, token.UID)
		c.Next()
	}
}

// CallerUID returns the verified caller UID, or "" when auth is off.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxKeyUID)
}

func abortText(c *gin.Context, status int, msg string) {
	c.Data(status, "text/plain; charset=utf-8", []byte(msg))
	c.Abort()
}
