package repository

import (
	"ideaforge/internal/model"

	"gorm.io/gorm"
)

type AdminLogRepository interface {
	Append(entry *model.AdminActionLog) error
	FindRecent(limit int) ([]model.AdminActionLog, error)
}

type adminLogRepository struct {
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Append(entry *model.AdminActionLog) error {
	return r.db.Create(entry).Error
}

func (r *adminLogRepository) FindRecent(limit int) ([]model.AdminActionLog, error) {
	var entries []model.AdminActionLog
	err := r.db.Order("timestamp DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
