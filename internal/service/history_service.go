package service

import (
	"sort"
	"time"

	"ideaforge/internal/apperr"
	"ideaforge/internal/dto"
	"ideaforge/internal/model"
	"ideaforge/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultHistoryLimit = 20

// HistoryService is append-and-read over a user's saved generation results.
type HistoryService interface {
	SaveIdea(subjectID string, req dto.SaveHistoryRequest) error
	GetUserHistory(subjectID, targetUserID string, limit int) ([]model.HistoryRecord, error)
}

type historyService struct {
	historyRepo repository.HistoryRepository
	roleService RoleService
}

func NewHistoryService(historyRepo repository.HistoryRepository, roleService RoleService) HistoryService {
	return &historyService{historyRepo: historyRepo, roleService: roleService}
}

// SaveIdea appends a history record for the caller. A record can only be
// written under the caller's own id, admins included.
func (s *historyService) SaveIdea(subjectID string, req dto.SaveHistoryRequest) error {
	if req.UserID == "" {
		return apperr.New(apperr.KindInvalidArgument, "User ID is required")
	}
	if req.UserID != subjectID {
		return apperr.New(apperr.KindPermissionDenied, "Can only save to your own history")
	}

	now := time.Now()
	record := &model.HistoryRecord{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		Query:          req.IdeaData.Query,
		Idea:           req.IdeaData.Idea,
		StudentProfile: req.IdeaData.StudentProfile,
		GameScore:      req.IdeaData.GameScore,
		GameSteps:      req.GameSteps,
		Timestamp:      now.Format(time.RFC3339),
		CreatedAt:      now,
	}

	if err := s.historyRepo.Create(record); err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("SaveIdea: failed to append history record")
		return apperr.Wrap(apperr.KindInternal, "failed to save idea to history", err)
	}
	return nil
}

// GetUserHistory returns the target user's records newest-first, truncated
// to limit. A subject always reads its own history; reading another user's
// requires an active admin. When the ordered query fails the read falls back
// to an unordered fetch sorted here on the record's own timestamp string,
// which was written independently of createdAt and can order differently.
func (s *historyService) GetUserHistory(subjectID, targetUserID string, limit int) ([]model.HistoryRecord, error) {
	if targetUserID != subjectID {
		if err := s.roleService.RequireAdmin(subjectID); err != nil {
			return nil, apperr.New(apperr.KindPermissionDenied, "Can only access your own history")
		}
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.historyRepo.FindByUserOrdered(targetUserID, limit)
	if err == nil {
		return records, nil
	}

	log.Warn().Err(err).Str("userID", targetUserID).Msg("GetUserHistory: ordered query failed, falling back to unordered fetch")
	records, err = s.historyRepo.FindByUser(targetUserID, limit)
	if err != nil {
		log.Error().Err(err).Str("userID", targetUserID).Msg("GetUserHistory: fallback fetch failed")
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch user history", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}
