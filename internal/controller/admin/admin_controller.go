package admin

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

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// GetUserRole godoc
// @Summary Get a user's role record
// @Description A subject may check its own role; checking another user's requires an active admin.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID to look up"
// @Success 200 {object} dto.UserRoleResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 403 {object} dto.ErrorResponse "Looking up another user without admin role"
// @Router /admin/user-role/{user_id} [get]
func (c *AdminController) GetUserRole(ctx *gin.Context) {
	subject := auth.SubjectFrom(ctx)
	if subject == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Authentication required"})
		return
	}

	info, err := c.adminService.GetUserRole(subject.ID, ctx.Param("user_id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserRoleResponse{
		Success: true,
		Role:    info.Role,
		IsAdmin: info.IsAdmin,
		Status:  info.Status,
		Message: "User role retrieved successfully",
	})
}

// ManageUsers godoc
// @Summary List all user roles or update one user's role/status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ManageUsersRequest true "Target user and the updates to apply; omit target to list all"
// @Success 200 {object} dto.StandardResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an active admin"
// @Failure 404 {object} dto.ErrorResponse "Target user not found"
// @Router /admin/manage-users [post]
func (c *AdminController) ManageUsers(ctx *gin.Context) {
	subject := auth.SubjectFrom(ctx)
	if subject == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req dto.ManageUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ManageUsers: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Details: []string{err.Error()},
		})
		return
	}
	if req.AdminUserID != subject.ID {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Success: false, Message: "Invalid admin user ID"})
		return
	}

	users, message, err := c.adminService.ManageUsers(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}

	resp := dto.StandardResponse{Success: true, Message: message}
	if users != nil {
		resp.Data = dto.NewUserSummaries(users)
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAdminLogs godoc
// @Summary Get the audit trail, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of entries" default(50)
// @Success 200 {object} dto.AdminLogsResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an active admin"
// @Router /admin/logs [get]
func (c *AdminController) GetAdminLogs(ctx *gin.Context) {
	subject := auth.SubjectFrom(ctx)
	if subject == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Authentication required"})
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		val, err := strconv.Atoi(limitStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid limit format"})
			return
		}
		limit = val
	}

	logs, err := c.adminService.GetAdminLogs(subject.ID, limit)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AdminLogsResponse{
		Success: true,
		Logs:    logs,
		Message: "Admin logs retrieved successfully",
	})
}

// BulkOperations godoc
// @Summary Apply a role/status change or export to many users at once
// @Description Each id is processed independently; per-id failures never abort the batch.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkUserRequest true "User ids, the action, and the value to apply"
// @Success 200 {object} dto.BulkOperationResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an active admin"
// @Router /admin/bulk-operations [post]
func (c *AdminController) BulkOperations(ctx *gin.Context) {
	subject := auth.SubjectFrom(ctx)
	if subject == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req dto.BulkUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("BulkOperations: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Details: []string{err.Error()},
		})
		return
	}
	if req.AdminUserID != subject.ID {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Success: false, Message: "Invalid admin user ID"})
		return
	}

	resp, err := c.adminService.BulkUserOperations(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
