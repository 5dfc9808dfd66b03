package controller

import (
	"sdet_prep_backend/internal/service"
	"sdet_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EntitlementController struct {
	EntitlementService *service.EntitlementService
}

func NewEntitlementController(entitlementService *service.EntitlementService) *EntitlementController {
	return &EntitlementController{EntitlementService: entitlementService}
}

// Status godoc
// @Summary Daily usage status
// @Description Current plan, questions used today, remaining allowance and time until the midnight reset
// @Tags entitlement
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "OK"
// @Router /api/entitlement [get]
func (c *EntitlementController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	userID := claims.UserID
	util.Success(ctx, gin.H{
		"isPremium":           c.EntitlementService.IsPremium(userID),
		"questionsAskedToday": c.EntitlementService.QuestionsAskedToday(userID),
		"remainingQuestions":  c.EntitlementService.RemainingQuestions(userID),
		"secondsUntilReset":   int(c.EntitlementService.TimeUntilReset().Seconds()),
		"hasSeenIntroToday":   c.EntitlementService.HasSeenIntroToday(userID),
	})
}

// swagger:model SetPremiumRequest
type SetPremiumRequest struct {
	IsPremium bool `json:"isPremium"`
}

// SetPremium godoc
// @Summary Change the user's plan
// @Description Grants or revokes premium; the quota counter is untouched so upgrade and downgrade take effect immediately
// @Tags entitlement
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SetPremiumRequest true "Target plan"
// @Success 200 {object} util.Response{data=object} "OK"
// @Router /api/premium [post]
func (c *EntitlementController) SetPremium(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SetPremiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.EntitlementService.SetPremium(claims.UserID, req.IsPremium)
	util.Success(ctx, gin.H{
		"isPremium":          req.IsPremium,
		"remainingQuestions": c.EntitlementService.RemainingQuestions(claims.UserID),
	})
}

// MarkIntroSeen godoc
// @Summary Mark the daily intro as seen
// @Description Remembers that the user dismissed today's intro screen
// @Tags entitlement
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "OK"
// @Router /api/entitlement/intro [post]
func (c *EntitlementController) MarkIntroSeen(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.EntitlementService.MarkIntroSeen(claims.UserID)
	util.Success(ctx, gin.H{"hasSeenIntroToday": true})
}
