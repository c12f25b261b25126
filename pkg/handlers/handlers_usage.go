package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rotaworks/rota-api-go/pkg/database"
)

// recordUsage upserts today's counters for an endpoint. Metering is best
// effort: a missing database or a failed write never affects the response.
func (h *Handler) recordUsage(endpoint string, shiftCount int) {
	if h.DB == nil {
		return
	}
	if err := database.RecordUsage(h.DB, endpoint, shiftCount); err != nil {
		h.Log.Debug().Err(err).Str("endpoint", endpoint).Msg("usage write failed")
	}
}

// GetUsage returns recent per-endpoint request counters.
func (h *Handler) GetUsage(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusOK, gin.H{"usage": []database.UsageRecord{}})
		return
	}

	usage, err := database.RecentUsage(h.DB, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalShifts int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalShifts += int64(u.TotalShifts)
	}

	c.JSON(http.StatusOK, gin.H{
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
			"shifts":   totalShifts,
		},
	})
}
