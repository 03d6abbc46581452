package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/holeweave/models"
)

// GORMCache persists cache entries through GORM, grounded on
// db/sqlite.go + models/models.go's Stage/Apply persistence pattern.
type GORMCache struct {
	db *gorm.DB
}

// NewGORMCache wraps an already-connected, already-migrated *gorm.DB.
func NewGORMCache(db *gorm.DB) *GORMCache {
	return &GORMCache{db: db}
}

func (c *GORMCache) Store(key Key, result []string) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal cache result: %w", err)
	}

	row := models.CachedQuery{
		ID:        key.Hash(),
		QueryText: key.QueryText,
		NumComps:  key.NumComps,
		Retries:   key.Retries,
		StopAt:    key.StopAt,
		Results:   datatypes.JSON(payload),
	}

	return c.db.Save(&row).Error
}

func (c *GORMCache) Retrieve(key Key) ([]string, bool, error) {
	var row models.CachedQuery
	err := c.db.Where("id = ?", key.Hash()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("retrieve cache entry: %w", err)
	}

	var result []string
	if err := json.Unmarshal(row.Results, &result); err != nil {
		return nil, false, fmt.Errorf("unmarshal cache result: %w", err)
	}
	return result, true, nil
}
