package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotaworks/rota-api-go/pkg/models"
)

// Store holds the immutable dataset snapshot for a session and exposes
// lookups over it. Entities are never mutated after New; every derived view
// is freshly constructed from the snapshot plus the viewer's selections.
type Store struct {
	payload       models.DataPayload
	teamsByID     map[string]*models.Team
	membersByID   map[string]*models.Member
	rostersByTeam map[string]*models.Roster
}

// New indexes a payload into a Store. Missing collections are treated as
// empty, never as an error.
func New(payload models.DataPayload) *Store {
	s := &Store{
		payload:       payload,
		teamsByID:     make(map[string]*models.Team, len(payload.Teams)),
		membersByID:   make(map[string]*models.Member, len(payload.Members)),
		rostersByTeam: make(map[string]*models.Roster, len(payload.Rosters)),
	}
	for i := range s.payload.Teams {
		t := &s.payload.Teams[i]
		s.teamsByID[t.ID] = t
	}
	for i := range s.payload.Members {
		m := &s.payload.Members[i]
		s.membersByID[m.ID] = m
	}
	for i := range s.payload.Rosters {
		r := &s.payload.Rosters[i]
		s.rostersByTeam[r.TeamID] = r
	}
	return s
}

// Load parses a JSON document matching the DataPayload shape.
func Load(data []byte) (*Store, error) {
	var payload models.DataPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return New(payload), nil
}

// LoadFile reads and parses a dataset document from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Load(data)
}

// Teams returns all teams in the snapshot.
func (s *Store) Teams() []models.Team { return s.payload.Teams }

// Members returns all members in the snapshot.
func (s *Store) Members() []models.Member { return s.payload.Members }

// Rosters returns all rosters in the snapshot.
func (s *Store) Rosters() []models.Roster { return s.payload.Rosters }

// TeamByID returns the team with the given id, or nil.
func (s *Store) TeamByID(id string) *models.Team { return s.teamsByID[id] }

// MemberByID returns the member with the given id, or nil.
func (s *Store) MemberByID(id string) *models.Member { return s.membersByID[id] }

// RosterByTeamID returns the team's roster, or nil. A team has at most one.
func (s *Store) RosterByTeamID(teamID string) *models.Roster {
	return s.rostersByTeam[teamID]
}

// TeamMembers resolves a team's member references against the member
// collection. Dangling references are skipped.
func (s *Store) TeamMembers(teamID string) []models.Member {
	team := s.teamsByID[teamID]
	if team == nil {
		return nil
	}
	members := make([]models.Member, 0, len(team.Members))
	for _, ref := range team.Members {
		if m := s.membersByID[ref.ID]; m != nil {
			members = append(members, *m)
		}
	}
	return members
}

// ShiftsForDate returns the team's shifts on one calendar date. Order
// follows the roster document; callers must not assume any.
func (s *Store) ShiftsForDate(teamID, isoDate string) []models.Shift {
	roster := s.rostersByTeam[teamID]
	if roster == nil {
		return nil
	}
	var shifts []models.Shift
	for _, sh := range roster.Shifts {
		if sh.Date == isoDate {
			shifts = append(shifts, sh)
		}
	}
	return shifts
}

// ShiftsInRange returns the team's shifts with dates inside the inclusive
// [startISO, endISO] range. ISO dates compare correctly as strings.
func (s *Store) ShiftsInRange(teamID, startISO, endISO string) []models.Shift {
	roster := s.rostersByTeam[teamID]
	if roster == nil {
		return nil
	}
	var shifts []models.Shift
	for _, sh := range roster.Shifts {
		if sh.Date >= startISO && sh.Date <= endISO {
			shifts = append(shifts, sh)
		}
	}
	return shifts
}
