package model

import (
	"time"
)

// Logical tables, named after the table-storage tables that hold the
// published word lists.
const (
	TableRandom = "RandomEN"
	TableLookup = "LookupEN"
	TableDaily  = "DailyEN"
)

// Tables lists every word table in loader order.
var Tables = []string{TableRandom, TableLookup, TableDaily}

// DayKeyLayout formats daily-source row keys (YYYYMMDD).
const DayKeyLayout = "20060102"

// Supported word lengths.
const (
	MinWordSize     = 5
	MaxWordSize     = 7
	DefaultWordSize = 5
)

type Word struct {
	PartitionKey string    `gorm:"primaryKey;size:2" json:"partitionKey"`
	RowKey       string    `gorm:"primaryKey;size:64" json:"rowKey"`
	Text         string    `gorm:"not null" json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SQLTableName maps a logical table to its relational name.
func SQLTableName(table string) string {
	switch table {
	case TableRandom:
		return "random_en"
	case TableLookup:
		return "lookup_en"
	case TableDaily:
		return "daily_en"
	}
	return ""
}

// DayKey returns the daily-source row key for t in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}
