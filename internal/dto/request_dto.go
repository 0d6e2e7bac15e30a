package dto

import "ideaforge/internal/model"

// GenerateIdeaRequest is the input of the generation pipeline. GameResponses
// is kept untyped on purpose: entries come straight from the quiz UI and
// malformed ones must score zero instead of failing the bind.
type GenerateIdeaRequest struct {
	Query          string               `json:"query" binding:"required"`
	StudentProfile model.StudentProfile `json:"studentProfile" binding:"required"`
	GameResponses  []any                `json:"gameResponses"`
}

// IdeaData is the generation result as the client hands it back for saving.
type IdeaData struct {
	Query          string               `json:"query"`
	Idea           string               `json:"idea"`
	StudentProfile model.StudentProfile `json:"studentProfile"`
	GameScore      int                  `json:"gameScore"`
}

type SaveHistoryRequest struct {
	UserID    string   `json:"userId" binding:"required"`
	IdeaData  IdeaData `json:"ideaData" binding:"required"`
	GameSteps []any    `json:"gameSteps"`
}

type ManageUsersRequest struct {
	AdminUserID  string  `json:"adminUserId" binding:"required"`
	TargetUserID *string `json:"targetUserId,omitempty"`
	NewRole      *string `json:"newRole,omitempty" binding:"omitempty,oneof=admin user"`
	NewStatus    *string `json:"newStatus,omitempty" binding:"omitempty,oneof=active inactive"`
}

// Bulk actions operate on each id independently.
const (
	BulkActionChangeRole   = "changeRole"
	BulkActionChangeStatus = "changeStatus"
	BulkActionExport       = "export"
)

type BulkUserRequest struct {
	AdminUserID string   `json:"adminUserId" binding:"required"`
	UserIDs     []string `json:"userIds" binding:"required,min=1"`
	Action      string   `json:"action" binding:"required,oneof=changeRole changeStatus export"`
	NewRole     *string  `json:"newRole,omitempty" binding:"omitempty,oneof=admin user"`
	NewStatus   *string  `json:"newStatus,omitempty" binding:"omitempty,oneof=active inactive"`
}
