package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaworks/rota-api-go/pkg/models"
)

var teamMembers = []models.Member{
	{ID: "m1", Name: "Alice", IsActive: true},
	{ID: "m2", Name: "Bob", IsActive: true},
	{ID: "m3", Name: "Carol", IsActive: true},
}

func joined(id, date, start, end, memberID string) models.JoinedShift {
	return models.JoinedShift{Shift: models.Shift{
		ID: id, Date: date, Start: start, End: end, MemberID: memberID, TeamID: "t1",
	}}
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 4.0, DurationHours("08:00", "12:00"))
	assert.Equal(t, 8.0, DurationHours("22:00", "06:00")) // overnight
	assert.Equal(t, 0.5, DurationHours("23:45", "00:15"))
	assert.Equal(t, 0.0, DurationHours("bad", "12:00"))
}

func TestAggregate_BasicCounts(t *testing.T) {
	shifts := []models.JoinedShift{
		joined("s1", "2025-09-01", "08:00", "16:00", "m1"),
		joined("s2", "2025-09-01", "16:00", "00:00", "m2"),
		joined("s3", "2025-09-02", "08:00", "16:00", "m1"),
	}

	m := Aggregate(shifts, teamMembers, "2025-09-01", "2025-09-02")
	assert.Equal(t, 3, m.TotalShifts)
	assert.Equal(t, 2, m.MembersScheduled)
	// 24 covered hours over a 48-hour window.
	assert.Equal(t, 50, m.CoveragePercentage)
}

func TestAggregate_CoverageUncappedButDailyCapped(t *testing.T) {
	// Three concurrent 12-hour shifts on a single day: 36 covered hours in
	// a 24-hour window.
	shifts := []models.JoinedShift{
		joined("s1", "2025-09-01", "08:00", "20:00", "m1"),
		joined("s2", "2025-09-01", "08:00", "20:00", "m2"),
		joined("s3", "2025-09-01", "08:00", "20:00", "m3"),
	}

	m := Aggregate(shifts, teamMembers, "2025-09-01", "2025-09-01")
	assert.Equal(t, 150, m.CoveragePercentage)

	require.Len(t, m.DailyCoverage, 1)
	assert.Equal(t, "2025-09-01", m.DailyCoverage[0].Date)
	assert.Equal(t, 100, m.DailyCoverage[0].Coverage)
}

func TestAggregate_DailyCoverageSeries(t *testing.T) {
	shifts := []models.JoinedShift{
		joined("s1", "2025-09-01", "08:00", "20:00", "m1"),
		joined("s2", "2025-09-03", "00:00", "06:00", "m2"),
	}

	m := Aggregate(shifts, teamMembers, "2025-09-01", "2025-09-03")
	require.Len(t, m.DailyCoverage, 3)
	assert.Equal(t, 50, m.DailyCoverage[0].Coverage)
	assert.Equal(t, 0, m.DailyCoverage[1].Coverage)
	assert.Equal(t, 25, m.DailyCoverage[2].Coverage)

	for _, day := range m.DailyCoverage {
		assert.GreaterOrEqual(t, day.Coverage, 0)
		assert.LessOrEqual(t, day.Coverage, 100)
	}
}

func TestAggregate_ShiftsPerMemberIncludesZeroCounts(t *testing.T) {
	shifts := []models.JoinedShift{
		joined("s1", "2025-09-01", "08:00", "12:00", "m1"),
		joined("s2", "2025-09-01", "12:00", "16:00", "m1"),
		joined("s3", "2025-09-01", "16:00", "20:00", "m2"),
	}

	m := Aggregate(shifts, teamMembers, "2025-09-01", "2025-09-01")
	require.Len(t, m.ShiftsPerMember, 3)
	assert.Equal(t, models.MemberShiftCount{MemberName: "Alice", Shifts: 2}, m.ShiftsPerMember[0])
	assert.Equal(t, models.MemberShiftCount{MemberName: "Bob", Shifts: 1}, m.ShiftsPerMember[1])
	assert.Equal(t, models.MemberShiftCount{MemberName: "Carol", Shifts: 0}, m.ShiftsPerMember[2])
}

func TestAggregate_UnknownAttributionExcludedFromBreakdown(t *testing.T) {
	shifts := []models.JoinedShift{
		joined("s1", "2025-09-01", "08:00", "12:00", "m1"),
		joined("s2", "2025-09-01", "12:00", "16:00", "ghost"),
	}

	m := Aggregate(shifts, teamMembers, "2025-09-01", "2025-09-01")

	// The dangling id still counts as a scheduled member value, but stays
	// out of the per-member breakdown.
	assert.Equal(t, 2, m.MembersScheduled)

	total := 0
	for _, item := range m.ShiftsPerMember {
		total += item.Shifts
	}
	assert.Equal(t, 1, total)
}

func TestAggregate_FairnessEvenDistribution(t *testing.T) {
	shifts := []models.JoinedShift{
		joined("s1", "2025-09-01", "08:00", "12:00", "m1"),
		joined("s2", "2025-09-01", "12:00", "16:00", "m2"),
		joined("s3", "2025-09-01", "16:00", "20:00", "m3"),
	}

	m := Aggregate(shifts, teamMembers, "2025-09-01", "2025-09-01")
	assert.Equal(t, 100, m.FairnessScore)
}

func TestAggregate_FairnessPenalizesSkew(t *testing.T) {
	var shifts []models.JoinedShift
	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		shifts = append(shifts, joined(id, "2025-09-01", "08:00", "09:00", "m1"))
	}

	m := Aggregate(shifts, teamMembers, "2025-09-01", "2025-09-01")
	// Counts [4 0 0]: sigma ~1.886, score round(100 - 18.86) = 81.
	assert.Equal(t, 81, m.FairnessScore)
	assert.GreaterOrEqual(t, m.FairnessScore, 0)
	assert.LessOrEqual(t, m.FairnessScore, 100)
}

func TestAggregate_EmptyInputs(t *testing.T) {
	m := Aggregate(nil, nil, "2025-09-01", "2025-09-07")
	assert.Equal(t, 0, m.TotalShifts)
	assert.Equal(t, 0, m.MembersScheduled)
	assert.Equal(t, 0, m.CoveragePercentage)
	assert.Equal(t, 0, m.FairnessScore)
	assert.Empty(t, m.ShiftsPerMember)
	assert.Len(t, m.DailyCoverage, 7)
}

func TestAggregate_InvalidRange(t *testing.T) {
	shifts := []models.JoinedShift{
		joined("s1", "2025-09-01", "08:00", "12:00", "m1"),
	}

	m := Aggregate(shifts, teamMembers, "2025-09-07", "2025-09-01")
	assert.Equal(t, 0, m.CoveragePercentage)
	assert.Empty(t, m.DailyCoverage)
}
