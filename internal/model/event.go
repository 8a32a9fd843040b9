package model

import (
	"database/sql"
	"time"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth       = "auth"
	EventCategoryContact    = "contact"
	EventCategoryStory      = "story"
	EventCategoryIdea       = "idea"
	EventCategoryMedia      = "media"
	EventCategoryMembership = "membership"
	EventCategorySystem     = "system"
	EventCategoryCache      = "cache"
)

// Event represents a system event log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string // JSON string
	IPAddress string
	CreatedAt time.Time
}
