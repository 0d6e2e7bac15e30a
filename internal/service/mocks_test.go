package service

import (
	"context"
	"errors"
	"time"

	"ideaforge/internal/apperr"
	"ideaforge/internal/model"

	"gorm.io/gorm"
)

// In-memory collaborators shared by the service tests.

type fakeRoleRepo struct {
	roles            map[string]*model.UserRole
	createErr        error
	findErr          error
	updateErr        error
	lastLoginUpdates int
	fieldUpdates     []map[string]any
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*model.UserRole{}}
}

func (f *fakeRoleRepo) Create(role *model.UserRole) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *role
	f.roles[role.UserID] = &copied
	return nil
}

func (f *fakeRoleRepo) FindByID(userID string) (*model.UserRole, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	role, ok := f.roles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *role
	return &copied, nil
}

func (f *fakeRoleRepo) FindAll() ([]model.UserRole, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []model.UserRole
	for _, role := range f.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (f *fakeRoleRepo) UpdateLastLogin(userID string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	role, ok := f.roles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	role.LastLogin = &now
	f.lastLoginUpdates++
	return nil
}

func (f *fakeRoleRepo) UpdateFields(userID string, fields map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	role, ok := f.roles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["role"].(string); ok {
		role.Role = v
	}
	if v, ok := fields["status"].(string); ok {
		role.Status = v
	}
	f.fieldUpdates = append(f.fieldUpdates, fields)
	return nil
}

type fakeHistoryRepo struct {
	records    []model.HistoryRecord
	createErr  error
	orderedErr error
	fetchErr   error
}

func (f *fakeHistoryRepo) Create(record *model.HistoryRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistoryRepo) filtered(userID string, limit int) []model.HistoryRecord {
	var out []model.HistoryRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeHistoryRepo) FindByUserOrdered(userID string, limit int) ([]model.HistoryRecord, error) {
	if f.orderedErr != nil {
		return nil, f.orderedErr
	}
	out := f.filtered(userID, 0)
	// newest first by CreatedAt
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistoryRepo) FindByUser(userID string, limit int) ([]model.HistoryRecord, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.filtered(userID, limit), nil
}

type fakeLogRepo struct {
	entries   []model.AdminActionLog
	appendErr error
}

func (f *fakeLogRepo) Append(entry *model.AdminActionLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) FindRecent(limit int) ([]model.AdminActionLog, error) {
	out := make([]model.AdminActionLog, len(f.entries))
	copy(out, f.entries)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Timestamp.After(out[i].Timestamp) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTextGenerator struct {
	reply string
	err   error
	// last prompt seen, for assertions
	prompt string
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeRoleGate satisfies RoleService for services that only need the admin
// check.
type fakeRoleGate struct {
	admins map[string]bool
}

func (f *fakeRoleGate) EnsureRole(string, string) {}

func (f *fakeRoleGate) IsAdmin(subjectID string) bool { return f.admins[subjectID] }

func (f *fakeRoleGate) RequireAdmin(subjectID string) error {
	if !f.admins[subjectID] {
		return apperr.New(apperr.KindPermissionDenied, "Admin access required")
	}
	return nil
}

func (f *fakeRoleGate) GetUserRole(userID string) RoleInfo {
	if f.admins[userID] {
		return RoleInfo{Role: model.RoleAdmin, IsAdmin: true, Status: model.StatusActive}
	}
	return RoleInfo{Role: model.RoleUser, IsAdmin: false, Status: model.StatusActive}
}

var errStoreDown = errors.New("store unavailable")
