package dataset

import (
	"fmt"

	"github.com/rotaworks/rota-api-go/pkg/tz"
)

// ValidationReport lists integrity problems found in a snapshot. The engine
// tolerates all of them at query time; the report exists for diagnostics.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
	Stats    struct {
		Teams   int `json:"teams"`
		Members int `json:"members"`
		Shifts  int `json:"shifts"`
	} `json:"stats"`
}

// Validate scans the snapshot for duplicate shift ids, dangling references
// and malformed clock strings.
func (s *Store) Validate() ValidationReport {
	report := ValidationReport{Valid: true}
	report.Stats.Teams = len(s.payload.Teams)
	report.Stats.Members = len(s.payload.Members)

	problem := func(format string, args ...any) {
		report.Valid = false
		report.Problems = append(report.Problems, fmt.Sprintf(format, args...))
	}

	shiftIDs := make(map[string]bool)
	for _, roster := range s.payload.Rosters {
		if s.teamsByID[roster.TeamID] == nil {
			problem("roster %s references unknown team %s", roster.ID, roster.TeamID)
		}
		for _, sh := range roster.Shifts {
			report.Stats.Shifts++
			if shiftIDs[sh.ID] {
				problem("duplicate shift id %s", sh.ID)
			}
			shiftIDs[sh.ID] = true
			if s.teamsByID[sh.TeamID] == nil {
				problem("shift %s references unknown team %s", sh.ID, sh.TeamID)
			}
			if sh.MemberID != "" && s.membersByID[sh.MemberID] == nil {
				problem("shift %s references unknown member %s", sh.ID, sh.MemberID)
			}
			if _, ok := tz.MinutesOfDay(sh.Start); !ok {
				problem("shift %s has malformed start time %q", sh.ID, sh.Start)
			}
			if _, ok := tz.MinutesOfDay(sh.End); !ok {
				problem("shift %s has malformed end time %q", sh.ID, sh.End)
			}
		}
	}

	for _, team := range s.payload.Teams {
		for _, ref := range team.Members {
			if s.membersByID[ref.ID] == nil {
				problem("team %s references unknown member %s", team.ID, ref.ID)
			}
		}
	}

	return report
}
