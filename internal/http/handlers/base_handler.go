// README: Base handler utilities (plain-text errors, import error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
)

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

// writeText sends a plain-text diagnostic. Import failures carry no structured error code.
func writeText(c *gin.Context, status int, msg string) {
	c.Data(status, "text/plain; charset=utf-8", []byte(msg))
}

func writeImportError(c *gin.Context, err error) {
	var ierr *pasteimport.Error
	if errors.As(err, &ierr) {
		writeText(c, ierr.Status, ierr.Message)
		return
	}
	writeText(c, http.StatusInternalServerError, err.Error())
}
