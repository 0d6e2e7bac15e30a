package repository

import (
	"ideaforge/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(role *model.UserRole) error
	FindByID(userID string) (*model.UserRole, error)
	FindAll() ([]model.UserRole, error)
	UpdateLastLogin(userID string) error
	UpdateFields(userID string, fields map[string]any) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(role *model.UserRole) error {
	return r.db.Create(role).Error
}

func (r *roleRepository) FindByID(userID string) (*model.UserRole, error) {
	var role model.UserRole
	err := r.db.First(&role, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindAll() ([]model.UserRole, error) {
	var roles []model.UserRole
	err := r.db.Order("created_at ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) UpdateLastLogin(userID string) error {
	return r.db.Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Update("last_login", gorm.Expr("NOW()")).Error
}

// UpdateFields applies a partial update. Callers only ever pass "role" and
// "status"; user_id is the key and stays immutable.
func (r *roleRepository) UpdateFields(userID string, fields map[string]any) error {
	return r.db.Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}
