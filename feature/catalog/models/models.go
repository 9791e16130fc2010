package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Data sources stored in Brainrot.DataSource.
const (
	SourceBadges = "badges_api"
	SourceWiki   = "fandom_wiki"
)

// Brainrot is the persisted catalog entry.
type Brainrot struct {
	ID          uint           `gorm:"column:id;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;size:255;not null;index:idx_brainrots_natural_key,priority:1" json:"name"`
	Rarity      string         `gorm:"column:rarity;size:50;not null;index" json:"rarity"`
	Category    string         `gorm:"column:category;size:50" json:"category"` // mirrors rarity
	Price       *float64       `gorm:"column:price" json:"price"`
	ImagePath   *string        `gorm:"column:image_path;size:500" json:"image_path"`
	Description *string        `gorm:"column:description;type:text" json:"description"`
	ExternalID  *int64         `gorm:"column:external_id;uniqueIndex" json:"external_id"`
	GameID      string         `gorm:"column:game_id;size:64;not null;index:idx_brainrots_natural_key,priority:2" json:"game_id"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata" swaggertype:"object"`
	DataSource  string         `gorm:"column:data_source;size:32" json:"data_source"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Brainrot) TableName() string {
	return "brainrots"
}

// RequiredColumns lists the columns the catalog depends on.
var RequiredColumns = []string{
	"id", "name", "rarity", "category", "price", "image_path", "description",
	"external_id", "game_id", "metadata", "data_source", "created_at", "updated_at",
}

// MetadataMap decodes the metadata column. Invalid or empty JSON yields nil.
func (b Brainrot) MetadataMap() map[string]any {
	if len(b.Metadata) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b.Metadata, &m); err != nil {
		return nil
	}
	return m
}

// RarityCount is one row of the per-tier breakdown.
type RarityCount struct {
	Rarity string `json:"rarity"`
	Count  int64  `json:"count"`
}

// ListFilter narrows catalog listings.
type ListFilter struct {
	Rarity string
	GameID string
	Limit  int
	Offset int
}

// Page is a window of catalog entries.
type Page struct {
	Items  []Brainrot `json:"items"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}
