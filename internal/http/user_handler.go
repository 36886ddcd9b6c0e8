package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/service"
)

// UserHandler handles admin user management endpoints.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) register(admin *gin.RouterGroup) {
	admin.GET("/users", h.List)
	admin.GET("/users/:id", h.GetByID)
	admin.PUT("/users/:id", h.Update)
	admin.PATCH("/users/:id/status", h.ChangeStatus)
	admin.DELETE("/users/:id", h.Delete)
}

// List lists user accounts.
// @Summary     List users
// @Tags        Users
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.UserListQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	result, err := h.users.List(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("users retrieved", dto.ProjectList(result, q.FieldList()))
}

// GetByID returns a single user account.
func (h *UserHandler) GetByID(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.GetQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("user retrieved", dto.Project(user, q.FieldList()))
}

// Update updates a user's profile fields and role.
func (h *UserHandler) Update(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSONAndValidate[dto.UpdateUserRequest](c)
	if err != nil {
		resp.FromError(err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("user updated", user)
}

// ChangeStatus toggles a user's verified flag.
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.ChangeUserStatusRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	user, err := h.users.ChangeStatus(c.Request.Context(), c.Param("id"), *req.IsVerified)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("user status updated", user)
}

// Delete removes a user account.
func (h *UserHandler) Delete(c *gin.Context) {
	resp := NewResponseBuilder(c)
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("user deleted", nil)
}
