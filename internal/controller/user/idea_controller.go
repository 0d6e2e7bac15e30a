package user

import (
	"net/http"

	"ideaforge/internal/controller"
	"ideaforge/internal/dto"
	"ideaforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type IdeaController struct {
	ideaService service.IdeaService
}

func NewIdeaController(ideaService service.IdeaService) *IdeaController {
	return &IdeaController{ideaService: ideaService}
}

// GenerateIdea godoc
// @Summary Generate a personalized project idea
// @Description Runs the generation pipeline over the caller's profile, query, and quiz responses.
// @Tags Ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateIdeaRequest true "Query, student profile, and raw quiz responses"
// @Success 200 {object} dto.ProjectIdeaResponse
// @Failure 400 {object} dto.ErrorResponse "Missing required request field"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 412 {object} dto.ErrorResponse "Generation endpoint not configured"
// @Failure 429 {object} dto.ErrorResponse "Generation quota exhausted"
// @Failure 502 {object} dto.ErrorResponse "Endpoint reply empty, malformed, or structurally invalid"
// @Router /generate-idea [post]
func (c *IdeaController) GenerateIdea(ctx *gin.Context) {
	var req dto.GenerateIdeaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GenerateIdea: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Details: []string{err.Error()},
		})
		return
	}

	idea, err := c.ideaService.GenerateProjectIdea(ctx.Request.Context(), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProjectIdeaResponse{
		Success: true,
		Idea:    idea,
		Message: "Project idea generated successfully",
	})
}
