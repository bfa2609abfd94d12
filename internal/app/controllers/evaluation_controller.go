package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/app/services"
	"github.com/web79/smiportal/internal/middleware"
)

// EvaluationController handles weekly evaluation reports
type EvaluationController struct {
	evaluationService services.EvaluationService
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(evaluationService services.EvaluationService) *EvaluationController {
	return &EvaluationController{
		evaluationService: evaluationService,
	}
}

// SendEvaluation emails a weekly evaluation report
// @Summary Send weekly evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.EvaluationReport true "Evaluation report"
// @Success 200 {object} dto.APIResponse "Evaluation email sent successfully!"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 500 {object} dto.ErrorResponse "Failed to send evaluation email"
// @Router /evaluations [post]
func (c *EvaluationController) SendEvaluation(ctx *gin.Context) {
	var report models.EvaluationReport
	if err := ctx.ShouldBindJSON(&report); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if err := c.evaluationService.SendEvaluation(ctx.Request.Context(), &report); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Evaluation email sent successfully!"))
}
