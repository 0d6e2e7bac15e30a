package call

import (
	"encoding/json"
	"net/http"

	"ideaforge/internal/apperr"
	"ideaforge/internal/auth"
	"ideaforge/internal/dto"
	"ideaforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Controller is the function-trigger surface: one POST endpoint per logical
// operation, with the request payload wrapped in a "data" envelope and the
// reply wrapped in "result". It translates into the same services the REST
// surface uses, so the two surfaces cannot drift apart.
type Controller struct {
	gameService    service.GameService
	ideaService    service.IdeaService
	historyService service.HistoryService
	adminService   service.AdminService
}

func NewController(
	gameService service.GameService,
	ideaService service.IdeaService,
	historyService service.HistoryService,
	adminService service.AdminService,
) *Controller {
	return &Controller{
		gameService:    gameService,
		ideaService:    ideaService,
		historyService: historyService,
		adminService:   adminService,
	}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Handle dispatches POST /call/:name.
func (c *Controller) Handle(ctx *gin.Context) {
	subject := auth.SubjectFrom(ctx)
	if subject == nil {
		writeCallError(ctx, apperr.New(apperr.KindUnauthenticated, "Authentication required"))
		return
	}

	var env envelope
	if err := ctx.ShouldBindJSON(&env); err != nil {
		writeCallError(ctx, apperr.Wrap(apperr.KindInvalidArgument, "invalid call envelope", err))
		return
	}
	if len(env.Data) == 0 {
		env.Data = json.RawMessage("{}")
	}

	name := ctx.Param("name")
	result, err := c.dispatch(ctx, subject, name, env.Data)
	if err != nil {
		writeCallError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": result})
}

func (c *Controller) dispatch(ctx *gin.Context, subject *auth.Subject, name string, data json.RawMessage) (any, error) {
	switch name {
	case "getGameSteps":
		return dto.GameStepsResponse{
			Success: true,
			Steps:   c.gameService.GetGameSteps(),
			Message: "Game steps retrieved successfully",
		}, nil

	case "generateProjectIdea":
		var req dto.GenerateIdeaRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidArgument, "invalid generation payload", err)
		}
		idea, err := c.ideaService.GenerateProjectIdea(ctx.Request.Context(), req)
		if err != nil {
			return nil, err
		}
		return dto.ProjectIdeaResponse{
			Success: true,
			Idea:    idea,
			Message: "Project idea generated successfully",
		}, nil

	case "saveIdeaToHistory":
		var req dto.SaveHistoryRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidArgument, "invalid history payload", err)
		}
		if err := c.historyService.SaveIdea(subject.ID, req); err != nil {
			return nil, err
		}
		return dto.StandardResponse{Success: true, Message: "Idea saved to history successfully"}, nil

	case "getUserHistory":
		var req struct {
			UserID string `json:"userId"`
			Limit  int    `json:"limit"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidArgument, "invalid history payload", err)
		}
		if req.UserID == "" {
			req.UserID = subject.ID
		}
		history, err := c.historyService.GetUserHistory(subject.ID, req.UserID, req.Limit)
		if err != nil {
			return nil, err
		}
		return dto.HistoryResponse{Success: true, History: history, Message: "History retrieved successfully"}, nil

	case "getUserRole":
		var req struct {
			UserID string `json:"userId"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidArgument, "invalid role payload", err)
		}
		if req.UserID == "" {
			req.UserID = subject.ID
		}
		info, err := c.adminService.GetUserRole(subject.ID, req.UserID)
		if err != nil {
			return nil, err
		}
		return dto.UserRoleResponse{
			Success: true,
			Role:    info.Role,
			IsAdmin: info.IsAdmin,
			Status:  info.Status,
			Message: "User role retrieved successfully",
		}, nil

	case "manageUsers":
		var req dto.ManageUsersRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidArgument, "invalid management payload", err)
		}
		// The trigger surface derives the acting admin from the credential.
		req.AdminUserID = subject.ID
		users, message, err := c.adminService.ManageUsers(req)
		if err != nil {
			return nil, err
		}
		resp := dto.StandardResponse{Success: true, Message: message}
		if users != nil {
			resp.Data = dto.NewUserSummaries(users)
		}
		return resp, nil

	case "getAdminLogs":
		var req struct {
			Limit int `json:"limit"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidArgument, "invalid logs payload", err)
		}
		logs, err := c.adminService.GetAdminLogs(subject.ID, req.Limit)
		if err != nil {
			return nil, err
		}
		return dto.AdminLogsResponse{Success: true, Logs: logs, Message: "Admin logs retrieved successfully"}, nil

	case "bulkUserOperations":
		var req dto.BulkUserRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidArgument, "invalid bulk payload", err)
		}
		req.AdminUserID = subject.ID
		return c.adminService.BulkUserOperations(req)

	default:
		return nil, apperr.Newf(apperr.KindNotFound, "unknown function %q", name)
	}
}

// callCode maps error kinds onto the trigger surface's status vocabulary.
func callCode(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated:
		return "UNAUTHENTICATED"
	case apperr.KindPermissionDenied:
		return "PERMISSION_DENIED"
	case apperr.KindNotFound:
		return "NOT_FOUND"
	case apperr.KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case apperr.KindGenerationUnavailable:
		return "FAILED_PRECONDITION"
	case apperr.KindQuotaExhausted:
		return "RESOURCE_EXHAUSTED"
	default:
		return "INTERNAL"
	}
}

func writeCallError(ctx *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("function", ctx.Param("name")).Msg("Callable operation failed")
		message = "Internal server error"
	}
	ctx.JSON(status, gin.H{
		"error": gin.H{
			"status":  callCode(err),
			"message": message,
		},
	})
}
