package model

import "time"

// Action names recorded in the audit trail.
const (
	ActionViewAllUsers = "view_all_users"
	ActionUpdateUser   = "update_user"
)

// AdminActionLog is one append-only audit entry per privileged mutation.
// Entries are never updated or deleted.
type AdminActionLog struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	AdminID      string         `json:"adminId" gorm:"not null;index"`
	Action       string         `json:"action" gorm:"not null"`
	TargetUserID *string        `json:"targetUserId,omitempty"`
	Timestamp    time.Time      `json:"timestamp" gorm:"index"`
	Details      map[string]any `json:"details" gorm:"serializer:json"`
}
