package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register wires all routes onto a gin engine. Shared between the server
// binary and the serverless adapter.
func Register(r *gin.Engine, h *Handler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Rota Roster API",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/teams", h.ListTeams)
		api.GET("/members", h.ListMembers)
		api.GET("/roster", h.GetRoster)
		api.GET("/roster/range", h.GetRosterRange)
		api.GET("/report", h.GetReport)
		api.GET("/next-shift/:memberId", h.GetNextShift)
		api.GET("/admin/summary", h.GetAdminSummary)
		api.GET("/validate", h.ValidateDataset)
		api.GET("/usage", h.GetUsage)
		api.POST("/timezone", h.SetTimezone)
	}
}
