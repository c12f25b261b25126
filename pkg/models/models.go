package models

// Role identifies the viewer's level of access to roster views.
type Role string

const (
	RoleMember   Role = "member"
	RoleTeamLead Role = "teamLead"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleMember, RoleTeamLead, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// MemberRef is a lightweight reference to a Member id held by a Team.
type MemberRef struct {
	ID string `json:"id"`
}

// Team represents a group of members sharing a source time zone
type Team struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Timezone string      `json:"timezone"` // IANA name, e.g. "Africa/Johannesburg"
	Members  []MemberRef `json:"members"`
}

// Member represents a person who can be assigned to shifts
type Member struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Role     Role     `json:"role"`
	Skills   []string `json:"skills,omitempty"`
	Timezone string   `json:"timezone,omitempty"` // optional override of the team zone
	IsActive bool     `json:"isActive"`
}

// Shift is a single scheduled work interval in its team's local wall clock.
// End may be earlier than Start, which marks an overnight shift ending the
// following day.
type Shift struct {
	ID       string `json:"id"`
	Date     string `json:"date"`  // ISO date, e.g. "2025-09-02"
	Start    string `json:"start"` // "HH:mm" 24h
	End      string `json:"end"`
	Task     string `json:"task"`
	MemberID string `json:"memberId"`
	TeamID   string `json:"teamId"`
}

// Roster holds all shifts of one team over a set of days
type Roster struct {
	ID     string   `json:"id"`
	TeamID string   `json:"teamId"`
	Days   []string `json:"days"`
	Shifts []Shift  `json:"shifts"`
}

// DataPayload is the root snapshot shape of the dataset document
type DataPayload struct {
	Teams   []Team   `json:"teams"`
	Members []Member `json:"members"`
	Rosters []Roster `json:"rosters"`
}

// JoinedShift is a shift augmented with its resolved member, conflict flag
// and display-converted times. All derived fields are set once at join time
// so downstream consumers never extend the record.
type JoinedShift struct {
	Shift
	Member         *Member `json:"member,omitempty"`
	Unassigned     bool    `json:"isUnassigned"`
	HasOverlap     bool    `json:"hasOverlap"`
	StartDate      string  `json:"startDate"` // in the viewer zone
	StartTime      string  `json:"startTime"`
	EndDate        string  `json:"endDate"`
	EndTime        string  `json:"endTime"`
	SourceTimezone string  `json:"sourceTimezone"`
}

// MemberShiftCount is one bar of the shifts-per-member breakdown
type MemberShiftCount struct {
	MemberName string `json:"memberName"`
	Shifts     int    `json:"shifts"`
}

// DayCoverage is one point of the daily coverage series
type DayCoverage struct {
	Date     string `json:"date"`
	Coverage int    `json:"coverage"` // capped at 100
}

// ReportMetrics is the aggregate output of the reporting view
type ReportMetrics struct {
	TotalShifts        int                `json:"totalShifts"`
	MembersScheduled   int                `json:"membersScheduled"`
	CoveragePercentage int                `json:"coveragePercentage"` // uncapped, may exceed 100
	FairnessScore      int                `json:"fairnessScore"`
	ShiftsPerMember    []MemberShiftCount `json:"shiftsPerMember"`
	DailyCoverage      []DayCoverage      `json:"dailyCoverage"`
}

// AdminSummary holds the dashboard counters shown to admins
type AdminSummary struct {
	TotalTeams       int `json:"totalTeams"`
	TotalMembers     int `json:"totalMembers"` // active members only
	TotalShifts      int `json:"totalShifts"`
	UnassignedShifts int `json:"unassignedShifts"`
	OverlapShifts    int `json:"overlapShifts"`
}

// Session captures the viewer's current selections. It is built per request
// and passed down explicitly; the engine keeps no per-viewer state.
type Session struct {
	TeamID    string `json:"teamId" form:"team"`
	Date      string `json:"date" form:"date"`
	StartDate string `json:"startDate" form:"from"`
	EndDate   string `json:"endDate" form:"to"`
	Zone      string `json:"zone" form:"zone"`
	Role      Role   `json:"role" form:"role"`
	MemberID  string `json:"memberId" form:"member"`
}
