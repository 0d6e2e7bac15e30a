package user

import (
	"net/http"

	"ideaforge/internal/dto"
	"ideaforge/internal/service"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	gameService service.GameService
}

func NewGameController(gameService service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// GetGameSteps godoc
// @Summary Get the quiz step catalog
// @Description Returns the fixed catalog of quiz steps shown before idea generation.
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.GameStepsResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Router /game-steps [get]
func (c *GameController) GetGameSteps(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.GameStepsResponse{
		Success: true,
		Steps:   c.gameService.GetGameSteps(),
		Message: "Game steps retrieved successfully",
	})
}
