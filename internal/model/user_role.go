package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// UserRole is the authorization record for a subject. One row per subject id;
// the id doubles as the primary key and never changes after creation.
type UserRole struct {
	UserID    string     `json:"userId" gorm:"primaryKey;column:user_id"`
	Email     string     `json:"email" gorm:"not null"`
	Role      string     `json:"role" gorm:"not null;default:'user'"` // "admin" or "user"
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	Status    string     `json:"status" gorm:"not null;default:'active'"` // "active" or "inactive"
}

// IsActiveAdmin reports whether the record authorizes admin operations.
// A deactivated admin is not authorized.
func (r *UserRole) IsActiveAdmin() bool {
	return r.Role == RoleAdmin && r.Status == StatusActive
}
