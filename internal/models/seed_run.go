package models

import "time"

// SeedRun records one completed fixture load
type SeedRun struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID        string    `gorm:"type:char(36);uniqueIndex;not null" json:"runId"`
	Seed         int64     `gorm:"not null;default:0" json:"seed"`
	Users        int64     `gorm:"not null" json:"users"`
	Gemstones    int64     `gorm:"not null" json:"gemstones"`
	Associations int64     `gorm:"not null" json:"associations"`
	Reviews      int64     `gorm:"not null" json:"reviews"`
	Summary      JSON      `json:"summary"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName overrides the table name for SeedRun
func (SeedRun) TableName() string {
	return "seed_runs"
}

// All returns every model managed by AutoMigrate, parents first
func All() []interface{} {
	return []interface{}{
		&User{},
		&Gemstone{},
		&Review{},
		&SeedRun{},
	}
}
