package roster

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rotaworks/rota-api-go/pkg/dataset"
	"github.com/rotaworks/rota-api-go/pkg/models"
	"github.com/rotaworks/rota-api-go/pkg/tz"
)

// Engine joins roster shifts to members and derives the per-viewer views:
// conflict-flagged shift lists, role-filtered lists, the next upcoming shift
// and the admin counters. All methods are pure over the snapshot plus the
// viewer's selections.
type Engine struct {
	data *dataset.Store
	conv *tz.Converter
	log  zerolog.Logger
}

// NewEngine creates an engine over an immutable snapshot.
func NewEngine(data *dataset.Store, conv *tz.Converter, log zerolog.Logger) *Engine {
	return &Engine{data: data, conv: conv, log: log}
}

// ShiftsForDate joins one team's shifts on a single date. An empty team or
// date selection yields an empty list, not an error.
func (e *Engine) ShiftsForDate(teamID, dateISO string) []models.JoinedShift {
	if teamID == "" || dateISO == "" {
		return []models.JoinedShift{}
	}
	return e.join(e.data.ShiftsForDate(teamID, dateISO), e.data.TeamByID(teamID))
}

// ShiftsInRange joins one team's shifts over an inclusive date range.
func (e *Engine) ShiftsInRange(teamID, startISO, endISO string) []models.JoinedShift {
	if teamID == "" || startISO == "" || endISO == "" {
		return []models.JoinedShift{}
	}
	return e.join(e.data.ShiftsInRange(teamID, startISO, endISO), e.data.TeamByID(teamID))
}

// join builds the fixed joined record for each shift: resolved member,
// display times in the viewer zone, and overlap flags.
func (e *Engine) join(shifts []models.Shift, team *models.Team) []models.JoinedShift {
	sourceZone := "UTC"
	if team != nil && team.Timezone != "" {
		sourceZone = team.Timezone
	} else if len(shifts) > 0 {
		e.log.Warn().Msg("shifts without a source zone, defaulting to UTC")
	}

	joined := make([]models.JoinedShift, 0, len(shifts))
	for _, sh := range shifts {
		member := e.data.MemberByID(sh.MemberID)
		js := models.JoinedShift{
			Shift:          sh,
			Member:         member,
			Unassigned:     member == nil,
			SourceTimezone: sourceZone,
		}
		js.StartDate, js.StartTime = e.conv.Convert(sh.Date, sh.Start, sourceZone)

		// An overnight shift ends on the following calendar day in the
		// source zone; advance the date before converting so rollover into
		// the viewer zone is computed from the right instant.
		endDate := sh.Date
		if start, ok1 := tz.MinutesOfDay(sh.Start); ok1 {
			if end, ok2 := tz.MinutesOfDay(sh.End); ok2 && end < start {
				endDate = tz.NextDay(sh.Date)
			}
		}
		js.EndDate, js.EndTime = e.conv.Convert(endDate, sh.End, sourceZone)

		joined = append(joined, js)
	}

	markOverlaps(joined)
	return joined
}

// markOverlaps flags every pair of same-member shifts whose half-open
// minute intervals intersect. The scan is exhaustive on purpose: sorting
// and checking neighbours would miss pairs that straddle a longer shift.
// Unassigned shifts never conflict.
func markOverlaps(shifts []models.JoinedShift) {
	for i := range shifts {
		for j := i + 1; j < len(shifts); j++ {
			a, b := &shifts[i], &shifts[j]
			if a.MemberID == "" || a.MemberID != b.MemberID {
				continue
			}
			if a.Member == nil || b.Member == nil {
				continue
			}
			s1, e1, ok1 := interval(a.Shift)
			s2, e2, ok2 := interval(b.Shift)
			if !ok1 || !ok2 {
				continue
			}
			if s1 < e2 && s2 < e1 {
				a.HasOverlap = true
				b.HasOverlap = true
			}
		}
	}
}

// interval returns the shift's active window [start, end) as minutes since
// midnight, with overnight shifts running past 1440.
func interval(sh models.Shift) (start, end int, ok bool) {
	start, ok1 := tz.MinutesOfDay(sh.Start)
	end, ok2 := tz.MinutesOfDay(sh.End)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	if end < start {
		end += 24 * 60
	}
	return start, end, true
}

// FilterByRole applies the viewer's role policy to an already-joined list.
// Members see only their own shifts; a member with no identity selected
// falls back to the full list. All other roles see everything.
func FilterByRole(shifts []models.JoinedShift, role models.Role, viewerMemberID string) []models.JoinedShift {
	if role != models.RoleMember || viewerMemberID == "" {
		return shifts
	}
	filtered := make([]models.JoinedShift, 0, len(shifts))
	for _, sh := range shifts {
		if sh.MemberID == viewerMemberID {
			filtered = append(filtered, sh)
		}
	}
	return filtered
}

// NextShift returns the member's nearest future shift across every roster,
// or nil when none remain. A shift counts as future when its date is after
// now's date, or equal with a start time strictly after now's clock.
func (e *Engine) NextShift(memberID string, now time.Time) *models.Shift {
	if memberID == "" {
		return nil
	}
	today := now.Format(tz.DateLayout)
	nowMinutes := now.Hour()*60 + now.Minute()

	var next *models.Shift
	for _, roster := range e.data.Rosters() {
		for _, sh := range roster.Shifts {
			if sh.MemberID != memberID {
				continue
			}
			startMinutes, ok := tz.MinutesOfDay(sh.Start)
			if !ok {
				continue
			}
			future := sh.Date > today || (sh.Date == today && startMinutes > nowMinutes)
			if !future {
				continue
			}
			if next == nil || sh.Date < next.Date || (sh.Date == next.Date && sh.Start < next.Start) {
				candidate := sh
				next = &candidate
			}
		}
	}
	return next
}

// Summary computes the admin dashboard counters over the current joined
// shift list. TotalMembers counts active members only.
func (e *Engine) Summary(shifts []models.JoinedShift) models.AdminSummary {
	summary := models.AdminSummary{
		TotalTeams:  len(e.data.Teams()),
		TotalShifts: len(shifts),
	}
	for _, m := range e.data.Members() {
		if m.IsActive {
			summary.TotalMembers++
		}
	}
	for _, sh := range shifts {
		if sh.Unassigned {
			summary.UnassignedShifts++
		}
		if sh.HasOverlap {
			summary.OverlapShifts++
		}
	}
	return summary
}
