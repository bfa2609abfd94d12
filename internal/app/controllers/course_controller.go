package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/app/services"
	"github.com/web79/smiportal/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course, "Course created successfully"))
}

// GetCourses lists courses
// @Summary List courses
// @Description Lists courses by name. search matches name or instructor.
// @Tags courses
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	var query dto.CourseListQuery
	_ = ctx.ShouldBindQuery(&query)

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), query.Search)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses, ""))
}

// GetCourseByID retrieves a course
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, ""))
}

// UpdateCourse handles partial course updates
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course updated successfully"))
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.DeleteCourse(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Course deleted successfully"))
}
