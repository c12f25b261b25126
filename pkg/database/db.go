package database

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rotaworks/rota-api-go/pkg/models"
)

// TeamRecord is a row of the teams table.
type TeamRecord struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Timezone  string `gorm:"not null" json:"timezone"`
	MemberIDs string `json:"member_ids"` // comma-separated Member ids
}

// MemberRecord is a row of the members table.
type MemberRecord struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Role     string `gorm:"not null" json:"role"`
	Skills   string `json:"skills"` // comma-separated
	Timezone string `json:"timezone"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// RosterRecord is a row of the rosters table.
type RosterRecord struct {
	ID     string `gorm:"primaryKey" json:"id"`
	TeamID string `gorm:"index;not null" json:"team_id"`
	Days   string `json:"days"` // comma-separated ISO dates
}

// ShiftRecord is a row of the shifts table.
type ShiftRecord struct {
	ID       string `gorm:"primaryKey" json:"id"`
	RosterID string `gorm:"index;not null" json:"roster_id"`
	Date     string `gorm:"index;not null" json:"date"`
	Start    string `gorm:"not null" json:"start"`
	End      string `gorm:"not null" json:"end"`
	Task     string `json:"task"`
	MemberID string `json:"member_id"`
	TeamID   string `json:"team_id"`
}

// Open connects to Postgres when DATABASE_URL is set, otherwise to a local
// sqlite file, and migrates the snapshot schema.
func Open() (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "rota.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&TeamRecord{}, &MemberRecord{}, &RosterRecord{}, &ShiftRecord{}, &UsageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

// SavePayload replaces the stored snapshot with payload inside one
// transaction.
func SavePayload(db *gorm.DB, payload models.DataPayload) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{&ShiftRecord{}, &RosterRecord{}, &MemberRecord{}, &TeamRecord{}} {
			if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
				return err
			}
		}

		for _, team := range payload.Teams {
			ids := make([]string, 0, len(team.Members))
			for _, ref := range team.Members {
				ids = append(ids, ref.ID)
			}
			rec := TeamRecord{
				ID:        team.ID,
				Name:      team.Name,
				Timezone:  team.Timezone,
				MemberIDs: strings.Join(ids, ","),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		for _, member := range payload.Members {
			rec := MemberRecord{
				ID:       member.ID,
				Name:     member.Name,
				Role:     string(member.Role),
				Skills:   strings.Join(member.Skills, ","),
				Timezone: member.Timezone,
				IsActive: member.IsActive,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		for _, roster := range payload.Rosters {
			rec := RosterRecord{
				ID:     roster.ID,
				TeamID: roster.TeamID,
				Days:   strings.Join(roster.Days, ","),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			for _, sh := range roster.Shifts {
				shiftRec := ShiftRecord{
					ID:       sh.ID,
					RosterID: roster.ID,
					Date:     sh.Date,
					Start:    sh.Start,
					End:      sh.End,
					Task:     sh.Task,
					MemberID: sh.MemberID,
					TeamID:   sh.TeamID,
				}
				if err := tx.Create(&shiftRec).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// LoadPayload materializes the stored snapshot back into the in-memory
// payload shape consumed by the engine.
func LoadPayload(db *gorm.DB) (models.DataPayload, error) {
	var payload models.DataPayload

	var teamRecs []TeamRecord
	if err := db.Find(&teamRecs).Error; err != nil {
		return payload, fmt.Errorf("load teams: %w", err)
	}
	for _, rec := range teamRecs {
		team := models.Team{ID: rec.ID, Name: rec.Name, Timezone: rec.Timezone}
		for _, id := range splitList(rec.MemberIDs) {
			team.Members = append(team.Members, models.MemberRef{ID: id})
		}
		payload.Teams = append(payload.Teams, team)
	}

	var memberRecs []MemberRecord
	if err := db.Find(&memberRecs).Error; err != nil {
		return payload, fmt.Errorf("load members: %w", err)
	}
	for _, rec := range memberRecs {
		payload.Members = append(payload.Members, models.Member{
			ID:       rec.ID,
			Name:     rec.Name,
			Role:     models.Role(rec.Role),
			Skills:   splitList(rec.Skills),
			Timezone: rec.Timezone,
			IsActive: rec.IsActive,
		})
	}

	var rosterRecs []RosterRecord
	if err := db.Find(&rosterRecs).Error; err != nil {
		return payload, fmt.Errorf("load rosters: %w", err)
	}
	for _, rec := range rosterRecs {
		roster := models.Roster{ID: rec.ID, TeamID: rec.TeamID, Days: splitList(rec.Days)}

		var shiftRecs []ShiftRecord
		if err := db.Where("roster_id = ?", rec.ID).Find(&shiftRecs).Error; err != nil {
			return payload, fmt.Errorf("load shifts for roster %s: %w", rec.ID, err)
		}
		for _, sr := range shiftRecs {
			roster.Shifts = append(roster.Shifts, models.Shift{
				ID:       sr.ID,
				Date:     sr.Date,
				Start:    sr.Start,
				End:      sr.End,
				Task:     sr.Task,
				MemberID: sr.MemberID,
				TeamID:   sr.TeamID,
			})
		}
		payload.Rosters = append(payload.Rosters, roster)
	}

	return payload, nil
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
