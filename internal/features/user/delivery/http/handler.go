package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.list)
		users.PUT("/:id/role", h.assignRole)
	}
}

func (h *UserHandler) list(c *gin.Context) {
	onlineOnly := c.Query("online") == "true"

	users, err := h.service.List(c.Request.Context(), onlineOnly)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

type assignRoleRequest struct {
	RoleID string `json:"roleId"`
}

func (h *UserHandler) assignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.NewValidationError("body", "invalid JSON body"))
		return
	}
	if req.RoleID == "" {
		_ = c.Error(errors.NewValidationError("roleId", "roleId is required"))
		return
	}

	user, err := h.service.AssignRole(c.Request.Context(), c.Param("id"), req.RoleID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
