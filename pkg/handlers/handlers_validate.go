package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateDataset reports integrity problems in the loaded snapshot:
// duplicate shift ids, dangling references, malformed clock strings. The
// engine tolerates all of these at query time, so the report is purely
// diagnostic.
func (h *Handler) ValidateDataset(c *gin.Context) {
	c.JSON(http.StatusOK, h.Data.Validate())
}
