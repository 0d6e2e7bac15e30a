package service

import (
	"errors"
	"time"

	"ideaforge/internal/apperr"
	"ideaforge/internal/model"
	"ideaforge/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RoleInfo is what getUserRole reports for a subject.
type RoleInfo struct {
	Role    string
	IsAdmin bool
	Status  string
}

// RoleService is the role gate: it provisions role records on first contact,
// answers role lookups, and enforces the admin requirement on privileged
// operations.
type RoleService interface {
	EnsureRole(subjectID, email string)
	IsAdmin(subjectID string) bool
	RequireAdmin(subjectID string) error
	GetUserRole(userID string) RoleInfo
}

type roleService struct {
	roleRepo repository.RoleRepository
}

func NewRoleService(roleRepo repository.RoleRepository) RoleService {
	return &roleService{roleRepo: roleRepo}
}

// EnsureRole is idempotent on role and status: the first call for a subject
// creates a default user/active record, every later call only refreshes
// lastLogin. Store errors are logged and swallowed so a flaky role write
// never blocks an otherwise authenticated request.
func (s *roleService) EnsureRole(subjectID, email string) {
	_, err := s.roleRepo.FindByID(subjectID)
	switch {
	case err == nil:
		if err := s.roleRepo.UpdateLastLogin(subjectID); err != nil {
			log.Error().Err(err).Str("userID", subjectID).Msg("EnsureRole: failed to update lastLogin")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		role := &model.UserRole{
			UserID:    subjectID,
			Email:     email,
			Role:      model.RoleUser,
			Status:    model.StatusActive,
			CreatedAt: time.Now(),
		}
		if err := s.roleRepo.Create(role); err != nil {
			log.Error().Err(err).Str("userID", subjectID).Msg("EnsureRole: failed to create role record")
		}
	default:
		log.Error().Err(err).Str("userID", subjectID).Msg("EnsureRole: role lookup failed")
	}
}

// IsAdmin requires both role=admin and status=active. Lookup failures count
// as not-admin rather than erroring, so a store hiccup can never widen
// access.
func (s *roleService) IsAdmin(subjectID string) bool {
	role, err := s.roleRepo.FindByID(subjectID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Str("userID", subjectID).Msg("IsAdmin: role lookup failed")
		}
		return false
	}
	return role.IsActiveAdmin()
}

func (s *roleService) RequireAdmin(subjectID string) error {
	if !s.IsAdmin(subjectID) {
		return apperr.New(apperr.KindPermissionDenied, "Admin access required")
	}
	return nil
}

// GetUserRole reports the stored role record, or the defaults a record would
// be created with when none exists yet.
func (s *roleService) GetUserRole(userID string) RoleInfo {
	role, err := s.roleRepo.FindByID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Str("userID", userID).Msg("GetUserRole: role lookup failed")
		}
		return RoleInfo{Role: model.RoleUser, IsAdmin: false, Status: model.StatusActive}
	}
	return RoleInfo{
		Role:    role.Role,
		IsAdmin: role.Role == model.RoleAdmin,
		Status:  role.Status,
	}
}
