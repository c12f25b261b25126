package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsageRecord counts requests per endpoint per day.
type UsageRecord struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Endpoint     string `gorm:"uniqueIndex:idx_endpoint_date;not null" json:"endpoint"`
	Date         string `gorm:"uniqueIndex:idx_endpoint_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalShifts  int    `gorm:"default:0" json:"total_shifts"`
}

// RecordUsage upserts today's counters for an endpoint in a single query.
func RecordUsage(db *gorm.DB, endpoint string, shiftCount int) error {
	today := time.Now().Format("2006-01-02")
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "endpoint"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_shifts":  gorm.Expr("total_shifts + ?", shiftCount),
		}),
	}).Create(&UsageRecord{
		Endpoint:     endpoint,
		Date:         today,
		RequestCount: 1,
		TotalShifts:  shiftCount,
	}).Error
}

// RecentUsage returns the newest usage rows, most recent date first.
func RecentUsage(db *gorm.DB, limit int) ([]UsageRecord, error) {
	var usage []UsageRecord
	err := db.Order("date desc").Limit(limit).Find(&usage).Error
	return usage, err
}
