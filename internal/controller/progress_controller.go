package controller

import (
	"sdet_prep_backend/internal/service"
	"sdet_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Overview godoc
// @Summary Practice overview
// @Description Totals and per-topic averages across the user's practice history
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressOverview} "OK"
// @Router /api/progress [get]
func (c *ProgressController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.ProgressService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// TopicProgress godoc
// @Summary Progress for one topic
// @Description Rolling averages and counts for a single topic; zeros when the topic has not been practiced
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   topic path string true "Topic name"
// @Success 200 {object} util.Response{data=model.TopicProgress} "OK"
// @Router /api/progress/{topic} [get]
func (c *ProgressController) TopicProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.TopicProgress(claims.UserID, ctx.Param("topic"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
