// README: Paste-import handlers (extract and plan variants share one pipeline).
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/http/middleware"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
)

type PasteHandler struct {
	svc *pasteimport.Service
}

func NewPasteHandler(svc *pasteimport.Service) *PasteHandler {
	return &PasteHandler{svc: svc}
}

// Import handles POST /api/parsePaste and POST /api/planDay.
func (h *PasteHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeText(c, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := h.svc.Import(c.Request.Context(), pasteimport.Input{
		Body:      body,
		UID:       middleware.CallerUID(c),
		RequestID: middleware.GetRequestID(c),
	})
	if err != nil {
		writeImportError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{"items": res.Items})
}
