package repository

import (
	"ideaforge/internal/model"

	"gorm.io/gorm"
)

type HistoryRepository interface {
	Create(record *model.HistoryRecord) error
	// FindByUserOrdered returns the user's records newest-first by the
	// server-assigned creation time.
	FindByUserOrdered(userID string, limit int) ([]model.HistoryRecord, error)
	// FindByUser is the unordered variant used when the ordered query fails
	// (the document store this replaced needed a composite index for it);
	// callers sort the result themselves.
	FindByUser(userID string, limit int) ([]model.HistoryRecord, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(record *model.HistoryRecord) error {
	return r.db.Create(record).Error
}

func (r *historyRepository) FindByUserOrdered(userID string, limit int) ([]model.HistoryRecord, error) {
	var records []model.HistoryRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *historyRepository) FindByUser(userID string, limit int) ([]model.HistoryRecord, error) {
	var records []model.HistoryRecord
	err := r.db.Where("user_id = ?", userID).
		Limit(limit).
		Find(&records).Error
	return records, err
}
