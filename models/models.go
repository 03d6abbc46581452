// Package models holds the GORM row types backing the query cache's
// persistent store.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// CachedQuery is one persisted (query, parameters) -> candidate-list entry.
// The primary key is a canonical hash of {QueryText, NumComps, Retries,
// StopAt}, computed by the cache package so that changing any of those
// four fields invalidates the row.
type CachedQuery struct {
	ID string `gorm:"primaryKey;type:varchar(64)"`

	QueryText string `gorm:"type:text;not null"`
	NumComps  int    `gorm:"not null"`
	Retries   int    `gorm:"not null"`
	StopAt    int    `gorm:"not null"`

	// Results is the JSON array of candidate strings.
	Results datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName gives CachedQuery a concise table name.
func (CachedQuery) TableName() string { return "cached_queries" }
