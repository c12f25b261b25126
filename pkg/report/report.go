package report

import (
	"math"
	"sort"
	"time"

	"github.com/rotaworks/rota-api-go/pkg/models"
	"github.com/rotaworks/rota-api-go/pkg/tz"
)

// Aggregate computes the reporting metrics for a team's shifts over an
// inclusive date range. The aggregate coverage figure is deliberately
// uncapped: concurrent shifts by several members can push it past 100,
// while each day of the DailyCoverage series stays capped at 100.
func Aggregate(shifts []models.JoinedShift, teamMembers []models.Member, startISO, endISO string) models.ReportMetrics {
	metrics := models.ReportMetrics{TotalShifts: len(shifts)}

	scheduled := make(map[string]struct{})
	for _, sh := range shifts {
		if sh.MemberID != "" {
			scheduled[sh.MemberID] = struct{}{}
		}
	}
	metrics.MembersScheduled = len(scheduled)

	days := dateRange(startISO, endISO)

	var coveredHours float64
	for _, sh := range shifts {
		coveredHours += DurationHours(sh.Start, sh.End)
	}
	if possible := float64(len(days)) * 24; possible > 0 {
		metrics.CoveragePercentage = int(math.Round(coveredHours / possible * 100))
	}

	metrics.ShiftsPerMember = shiftsPerMember(shifts, teamMembers)
	metrics.FairnessScore = fairness(metrics.ShiftsPerMember)
	metrics.DailyCoverage = dailyCoverage(shifts, days)
	return metrics
}

// DurationHours is the length of a shift in hours, wrapping overnight
// shifts past midnight. Malformed clock strings count as zero hours.
func DurationHours(start, end string) float64 {
	startMinutes, ok1 := tz.MinutesOfDay(start)
	endMinutes, ok2 := tz.MinutesOfDay(end)
	if !ok1 || !ok2 {
		return 0
	}
	if endMinutes < startMinutes {
		endMinutes += 24 * 60
	}
	return float64(endMinutes-startMinutes) / 60
}

// shiftsPerMember counts shifts for every team member, including those with
// none, descending by count. Attributions to ids outside the team are left
// out of the breakdown.
func shiftsPerMember(shifts []models.JoinedShift, teamMembers []models.Member) []models.MemberShiftCount {
	counts := make(map[string]int, len(teamMembers))
	for _, m := range teamMembers {
		counts[m.ID] = 0
	}
	for _, sh := range shifts {
		if _, known := counts[sh.MemberID]; known {
			counts[sh.MemberID]++
		}
	}

	perMember := make([]models.MemberShiftCount, 0, len(teamMembers))
	for _, m := range teamMembers {
		perMember = append(perMember, models.MemberShiftCount{
			MemberName: m.Name,
			Shifts:     counts[m.ID],
		})
	}
	sort.SliceStable(perMember, func(i, j int) bool {
		return perMember[i].Shifts > perMember[j].Shifts
	})
	return perMember
}

// fairness scores distribution evenness from the population standard
// deviation of per-member shift counts: 100 at sigma zero, minus ten points
// per sigma, floored at zero. A heuristic, not a calibrated index.
func fairness(perMember []models.MemberShiftCount) int {
	if len(perMember) == 0 {
		return 0
	}

	var sum float64
	for _, item := range perMember {
		sum += float64(item.Shifts)
	}
	mean := sum / float64(len(perMember))

	var varianceSum float64
	for _, item := range perMember {
		diff := float64(item.Shifts) - mean
		varianceSum += diff * diff
	}
	sigma := math.Sqrt(varianceSum / float64(len(perMember)))

	score := int(math.Round(100 - sigma*10))
	if score < 0 {
		return 0
	}
	return score
}

// dailyCoverage sums each day's shift hours as a percentage of 24, capped
// at 100 per day.
func dailyCoverage(shifts []models.JoinedShift, days []string) []models.DayCoverage {
	series := make([]models.DayCoverage, 0, len(days))
	for _, day := range days {
		var hours float64
		for _, sh := range shifts {
			if sh.Date == day {
				hours += DurationHours(sh.Start, sh.End)
			}
		}
		coverage := int(math.Round(hours / 24 * 100))
		if coverage > 100 {
			coverage = 100
		}
		series = append(series, models.DayCoverage{Date: day, Coverage: coverage})
	}
	return series
}

// dateRange lists every calendar day from start to end inclusive. An
// unparseable or inverted range yields no days.
func dateRange(startISO, endISO string) []string {
	start, err1 := time.Parse(tz.DateLayout, startISO)
	end, err2 := time.Parse(tz.DateLayout, endISO)
	if err1 != nil || err2 != nil || end.Before(start) {
		return nil
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(tz.DateLayout))
	}
	return days
}
