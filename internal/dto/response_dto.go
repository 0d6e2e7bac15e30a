package dto

import (
	"time"

	"ideaforge/internal/model"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// Every response carries at least a success flag and a human-readable
// message; domain payloads are additional fields.

type StandardResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type GameStepsResponse struct {
	Success bool             `json:"success"`
	Steps   []model.GameStep `json:"steps"`
	Message string           `json:"message,omitempty"`
}

type ProjectIdeaResponse struct {
	Success bool               `json:"success"`
	Idea    *model.ProjectIdea `json:"idea,omitempty"`
	Message string             `json:"message,omitempty"`
}

type HistoryResponse struct {
	Success bool                  `json:"success"`
	History []model.HistoryRecord `json:"history"`
	Message string                `json:"message,omitempty"`
}

type UserRoleResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

type AdminLogsResponse struct {
	Success bool                   `json:"success"`
	Logs    []model.AdminActionLog `json:"logs"`
	Message string                 `json:"message,omitempty"`
}

// BulkItemResult reports the outcome for a single id of a bulk operation.
type BulkItemResult struct {
	UserID string          `json:"userId"`
	Status string          `json:"status"` // "success" or "failed"
	Action string          `json:"action,omitempty"`
	Reason string          `json:"reason,omitempty"`
	Data   *model.UserRole `json:"data,omitempty"` // export only
}

type BulkOperationResponse struct {
	Success        bool             `json:"success"`
	ProcessedCount int              `json:"processedCount"`
	FailedCount    int              `json:"failedCount"`
	Results        []BulkItemResult `json:"results"`
	Message        string           `json:"message,omitempty"`
}

// UserSummary is the admin-facing projection of a role record.
type UserSummary struct {
	UserID    string     `json:"userId"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// NewUserSummaries maps role records into their admin-facing projection.
func NewUserSummaries(users []model.UserRole) []UserSummary {
	summaries := make([]UserSummary, 0, len(users))
	if err := copier.Copy(&summaries, &users); err != nil {
		log.Error().Err(err).Msg("Failed to map user roles to summaries")
	}
	return summaries
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
