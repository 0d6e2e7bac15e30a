package model

import "time"

// HistoryRecord is one saved generation result. Append-only per user.
//
// Timestamp is the client-facing ISO string set when the record is built;
// CreatedAt is assigned by the server at write time. The two are set
// independently, and the history-read fallback sorts on Timestamp, so their
// orderings can disagree. That mirrors the stored data shape clients already
// depend on.
type HistoryRecord struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	UserID         string         `json:"userId" gorm:"not null;index"`
	Query          string         `json:"query" gorm:"type:text"`
	Idea           string         `json:"idea" gorm:"type:text"`
	StudentProfile StudentProfile `json:"studentProfile" gorm:"serializer:json"`
	GameScore      int            `json:"gameScore"`
	GameSteps      []any          `json:"gameSteps" gorm:"serializer:json"`
	Timestamp      string         `json:"timestamp"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"index"`
}
