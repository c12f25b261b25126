package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rotaworks/rota-api-go/pkg/dataset"
	"github.com/rotaworks/rota-api-go/pkg/models"
	"github.com/rotaworks/rota-api-go/pkg/report"
	"github.com/rotaworks/rota-api-go/pkg/roster"
	"github.com/rotaworks/rota-api-go/pkg/tz"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Data   *dataset.Store
	Engine *roster.Engine
	TZ     *tz.Converter
	DB     *gorm.DB // optional; nil disables usage metering
	Log    zerolog.Logger
}

// session binds the viewer's selections from the query string. The zone
// selection is applied to the converter immediately; an unknown zone is
// logged and the previous zone stays in effect.
func (h *Handler) session(c *gin.Context) models.Session {
	var s models.Session
	_ = c.ShouldBindQuery(&s)
	if !models.ValidRole(s.Role) {
		s.Role = models.RoleMember
	}
	if s.Zone != "" {
		if err := h.TZ.SetZone(s.Zone); err != nil {
			h.Log.Warn().Err(err).Str("zone", s.Zone).Msg("ignoring invalid viewer zone")
		}
	}
	return s
}

// ListTeams returns all teams in the snapshot.
func (h *Handler) ListTeams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"teams": h.Data.Teams()})
}

// ListMembers returns all members in the snapshot.
func (h *Handler) ListMembers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"members": h.Data.Members()})
}

// GetRoster returns the joined, conflict-flagged and role-filtered shift
// list for a team and a single date.
func (h *Handler) GetRoster(c *gin.Context) {
	s := h.session(c)

	shifts := h.Engine.ShiftsForDate(s.TeamID, s.Date)
	filtered := roster.FilterByRole(shifts, s.Role, s.MemberID)
	h.recordUsage("roster", len(filtered))

	c.JSON(http.StatusOK, gin.H{
		"shifts":   filtered,
		"timezone": h.TZ.Zone(),
	})
}

// GetRosterRange returns the joined shift list over an inclusive date range.
func (h *Handler) GetRosterRange(c *gin.Context) {
	s := h.session(c)

	shifts := h.Engine.ShiftsInRange(s.TeamID, s.StartDate, s.EndDate)
	filtered := roster.FilterByRole(shifts, s.Role, s.MemberID)
	h.recordUsage("roster_range", len(filtered))

	c.JSON(http.StatusOK, gin.H{
		"shifts":   filtered,
		"timezone": h.TZ.Zone(),
	})
}

// GetReport returns the coverage and fairness metrics for a team over an
// inclusive date range. Empty selections produce zero-valued metrics.
func (h *Handler) GetReport(c *gin.Context) {
	s := h.session(c)

	shifts := h.Engine.ShiftsInRange(s.TeamID, s.StartDate, s.EndDate)
	teamMembers := h.Data.TeamMembers(s.TeamID)
	metrics := report.Aggregate(shifts, teamMembers, s.StartDate, s.EndDate)
	h.recordUsage("report", metrics.TotalShifts)

	c.JSON(http.StatusOK, metrics)
}

// GetNextShift returns the member's nearest future shift, or null.
func (h *Handler) GetNextShift(c *gin.Context) {
	memberID := c.Param("memberId")

	now := time.Now()
	if loc, err := time.LoadLocation(h.TZ.Zone()); err == nil {
		now = now.In(loc)
	}

	next := h.Engine.NextShift(memberID, now)
	c.JSON(http.StatusOK, gin.H{"nextShift": next})
}

// GetAdminSummary returns the dashboard counters for the currently selected
// team and date. Role gating is left to the presentation layer.
func (h *Handler) GetAdminSummary(c *gin.Context) {
	s := h.session(c)

	shifts := h.Engine.ShiftsForDate(s.TeamID, s.Date)
	c.JSON(http.StatusOK, h.Engine.Summary(shifts))
}

// SetTimezone selects the viewer zone for subsequent displays.
func (h *Handler) SetTimezone(c *gin.Context) {
	var req struct {
		Timezone string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.TZ.SetZone(req.Timezone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"timezone": h.TZ.Zone()})
}
