package model

import (
	"time"

	"gorm.io/datatypes"
)

// SeedRun records one execution of the word loader.
type SeedRun struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Checksum  string         `gorm:"size:64;not null" json:"checksum"`
	StartDate string         `gorm:"size:8;not null" json:"startDate"`
	Tables    string         `gorm:"not null" json:"tables"`
	Counts    datatypes.JSON `json:"counts"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}

func (SeedRun) TableName() string {
	return "seed_runs"
}
