package service

import (
	"errors"
	"fmt"
	"time"

	"ideaforge/internal/apperr"
	"ideaforge/internal/dto"
	"ideaforge/internal/model"
	"ideaforge/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultAdminLogLimit = 50

// AdminService covers the privileged record operations: role lookups on
// behalf of others, user management, bulk operations, and the audit trail.
type AdminService interface {
	GetUserRole(subjectID, targetUserID string) (RoleInfo, error)
	ManageUsers(req dto.ManageUsersRequest) ([]model.UserRole, string, error)
	BulkUserOperations(req dto.BulkUserRequest) (*dto.BulkOperationResponse, error)
	GetAdminLogs(adminID string, limit int) ([]model.AdminActionLog, error)
}

type adminService struct {
	roleRepo    repository.RoleRepository
	logRepo     repository.AdminLogRepository
	roleService RoleService
}

func NewAdminService(roleRepo repository.RoleRepository, logRepo repository.AdminLogRepository, roleService RoleService) AdminService {
	return &adminService{roleRepo: roleRepo, logRepo: logRepo, roleService: roleService}
}

// GetUserRole answers a role lookup. A subject may always look up its own
// role; looking up someone else's requires an active admin.
func (s *adminService) GetUserRole(subjectID, targetUserID string) (RoleInfo, error) {
	if targetUserID != subjectID {
		if err := s.roleService.RequireAdmin(subjectID); err != nil {
			return RoleInfo{}, apperr.New(apperr.KindPermissionDenied, "Can only check your own role")
		}
	}
	return s.roleService.GetUserRole(targetUserID), nil
}

// ManageUsers lists all role records when no target is given, or applies the
// supplied role/status updates to the target. Both paths leave one audit
// entry. The returned string is the human-readable outcome message.
func (s *adminService) ManageUsers(req dto.ManageUsersRequest) ([]model.UserRole, string, error) {
	if err := s.roleService.RequireAdmin(req.AdminUserID); err != nil {
		return nil, "", err
	}

	if req.TargetUserID == nil || *req.TargetUserID == "" {
		users, err := s.roleRepo.FindAll()
		if err != nil {
			return nil, "", apperr.Wrap(apperr.KindInternal, "failed to list user roles", err)
		}
		s.logAdminAction(req.AdminUserID, model.ActionViewAllUsers, nil, nil)
		return users, "User roles retrieved successfully", nil
	}

	target := *req.TargetUserID
	if _, err := s.roleRepo.FindByID(target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.New(apperr.KindNotFound, "User not found")
		}
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to load target user", err)
	}

	updates := map[string]any{}
	if req.NewRole != nil {
		updates["role"] = *req.NewRole
	}
	if req.NewStatus != nil {
		updates["status"] = *req.NewStatus
	}

	if len(updates) > 0 {
		if err := s.roleRepo.UpdateFields(target, updates); err != nil {
			return nil, "", apperr.Wrap(apperr.KindInternal, "failed to update user", err)
		}
		details := make(map[string]any, len(updates))
		for k, v := range updates {
			details[k] = v
		}
		s.logAdminAction(req.AdminUserID, model.ActionUpdateUser, &target, details)
	}
	return nil, "User updated successfully", nil
}

// BulkUserOperations processes every id independently: a missing user or a
// store error on one id is recorded as a per-id failure and the loop keeps
// going. One aggregate audit entry is written after the batch completes.
func (s *adminService) BulkUserOperations(req dto.BulkUserRequest) (*dto.BulkOperationResponse, error) {
	if err := s.roleService.RequireAdmin(req.AdminUserID); err != nil {
		return nil, err
	}

	resp := &dto.BulkOperationResponse{Success: true, Results: make([]dto.BulkItemResult, 0, len(req.UserIDs))}
	for _, userID := range req.UserIDs {
		result := s.applyBulkAction(userID, req)
		if result.Status == "success" {
			resp.ProcessedCount++
		} else {
			resp.FailedCount++
		}
		resp.Results = append(resp.Results, result)
	}

	s.logAdminAction(req.AdminUserID, "bulk_"+req.Action, nil, map[string]any{
		"user_count": len(req.UserIDs),
		"processed":  resp.ProcessedCount,
		"failed":     resp.FailedCount,
	})

	resp.Message = fmt.Sprintf("Bulk operation completed: %d processed, %d failed",
		resp.ProcessedCount, resp.FailedCount)
	return resp, nil
}

func (s *adminService) applyBulkAction(userID string, req dto.BulkUserRequest) dto.BulkItemResult {
	user, err := s.roleRepo.FindByID(userID)
	if err != nil {
		reason := "User not found"
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			reason = err.Error()
		}
		return dto.BulkItemResult{UserID: userID, Status: "failed", Reason: reason}
	}

	switch req.Action {
	case dto.BulkActionChangeRole:
		if req.NewRole == nil {
			return dto.BulkItemResult{UserID: userID, Status: "failed", Reason: "no new role provided"}
		}
		if err := s.roleRepo.UpdateFields(userID, map[string]any{"role": *req.NewRole}); err != nil {
			return dto.BulkItemResult{UserID: userID, Status: "failed", Reason: err.Error()}
		}
		return dto.BulkItemResult{UserID: userID, Status: "success", Action: "Role changed to " + *req.NewRole}
	case dto.BulkActionChangeStatus:
		if req.NewStatus == nil {
			return dto.BulkItemResult{UserID: userID, Status: "failed", Reason: "no new status provided"}
		}
		if err := s.roleRepo.UpdateFields(userID, map[string]any{"status": *req.NewStatus}); err != nil {
			return dto.BulkItemResult{UserID: userID, Status: "failed", Reason: err.Error()}
		}
		return dto.BulkItemResult{UserID: userID, Status: "success", Action: "Status changed to " + *req.NewStatus}
	case dto.BulkActionExport:
		return dto.BulkItemResult{UserID: userID, Status: "success", Data: user}
	default:
		return dto.BulkItemResult{UserID: userID, Status: "failed", Reason: "unknown action " + req.Action}
	}
}

func (s *adminService) GetAdminLogs(adminID string, limit int) ([]model.AdminActionLog, error) {
	if err := s.roleService.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultAdminLogLimit
	}
	logs, err := s.logRepo.FindRecent(limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch admin logs", err)
	}
	return logs, nil
}

// logAdminAction appends to the audit trail. Best-effort: a failed audit
// write must never abort the operation that triggered it.
func (s *adminService) logAdminAction(adminID, action string, targetUserID *string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	entry := &model.AdminActionLog{
		ID:           uuid.NewString(),
		AdminID:      adminID,
		Action:       action,
		TargetUserID: targetUserID,
		Timestamp:    time.Now(),
		Details:      details,
	}
	if err := s.logRepo.Append(entry); err != nil {
		log.Error().Err(err).Str("adminID", adminID).Str("action", action).Msg("Failed to write admin audit log")
	}
}
