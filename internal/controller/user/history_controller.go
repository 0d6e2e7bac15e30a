package user

import (
	"net/http"
	"strconv"

	"ideaforge/internal/auth"
	"ideaforge/internal/controller"
	"ideaforge/internal/dto"
	"ideaforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HistoryController struct {
	historyService service.HistoryService
}

func NewHistoryController(historyService service.HistoryService) *HistoryController {
	return &HistoryController{historyService: historyService}
}

// SaveHistory godoc
// @Summary Save a generated idea to the caller's history
// @Tags History
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveHistoryRequest true "Idea data and the quiz steps it was generated from"
// @Success 200 {object} dto.StandardResponse
// @Failure 400 {object} dto.ErrorResponse "Missing required request field"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 403 {object} dto.ErrorResponse "Record userId does not match the caller"
// @Router /history [post]
func (c *HistoryController) SaveHistory(ctx *gin.Context) {
	subject := auth.SubjectFrom(ctx)
	if subject == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req dto.SaveHistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveHistory: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Details: []string{err.Error()},
		})
		return
	}

	if err := c.historyService.SaveIdea(subject.ID, req); err != nil {
		controller.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StandardResponse{
		Success: true,
		Message: "Idea saved to history successfully",
	})
}

// GetUserHistory godoc
// @Summary Get a user's idea history, newest first
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID whose history to read"
// @Param limit query int false "Maximum number of records" default(20)
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 403 {object} dto.ErrorResponse "Reading another user's history without admin role"
// @Router /history/{user_id} [get]
func (c *HistoryController) GetUserHistory(ctx *gin.Context) {
	subject := auth.SubjectFrom(ctx)
	if subject == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Authentication required"})
		return
	}

	targetUserID := ctx.Param("user_id")
	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		val, err := strconv.Atoi(limitStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid limit format"})
			return
		}
		limit = val
	}

	history, err := c.historyService.GetUserHistory(subject.ID, targetUserID, limit)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.HistoryResponse{
		Success: true,
		History: history,
		Message: "History retrieved successfully",
	})
}
