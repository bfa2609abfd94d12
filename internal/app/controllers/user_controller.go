package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/app/services"
	"github.com/web79/smiportal/internal/middleware"
)

// UserController handles staff account operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser creates a staff account
// @Summary Create a staff account
// @Description Only a super-admin may create accounts. Role defaults to admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Requires super-admin"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewUserResponse(user), "User created successfully"))
}

// GetUsers lists staff accounts
// @Summary List staff accounts
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Router /users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponses(users), ""))
}
