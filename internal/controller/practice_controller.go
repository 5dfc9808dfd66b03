package controller

import (
	"errors"
	"sdet_prep_backend/internal/service"
	"sdet_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	RecordingID string `json:"recordingId" binding:"required"`
	Topic       string `json:"topic" binding:"required"`
	Question    string `json:"question" binding:"required"`
}

// SubmitAnswer godoc
// @Summary Submit a recorded answer for evaluation
// @Description Transcribes and scores the recording; on success the session is saved and one daily question is consumed
// @Tags practice
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitAnswerRequest true "Answer submission"
// @Success 200 {object} util.Response{data=service.SubmitAnswerOutput} "OK"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Recording not found"
// @Failure 409 {object} util.Response "Evaluation already in progress"
// @Failure 429 {object} util.Response "Daily question limit reached"
// @Router /api/practice [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.PracticeService.SubmitAnswer(ctx.Request.Context(), claims.UserID, service.SubmitAnswerInput{
		RecordingID: req.RecordingID,
		Topic:       req.Topic,
		Question:    req.Question,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrDailyLimitReached):
			util.Error(ctx, 429, "daily question limit reached")
		case errors.Is(err, util.ErrEvaluationInFlight):
			util.Error(ctx, 409, "an evaluation is already in progress")
		case errors.Is(err, util.ErrRecordingNotFound):
			util.NotFound(ctx, "recording not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, out)
}

// SampleAnswer godoc
// @Summary Model answer for a question
// @Description Returns a structured sample answer; premium plan required
// @Tags practice
// @Produce  json
// @Security ApiKeyAuth
// @Param   question query string true "Question text"
// @Success 200 {object} util.Response{data=model.SampleAnswer} "OK"
// @Failure 403 {object} util.Response "Premium plan required"
// @Router /api/practice/sample [get]
func (c *PracticeController) SampleAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	question := ctx.Query("question")
	if question == "" {
		util.BadRequest(ctx, "question is required")
		return
	}

	sample, err := c.PracticeService.SampleAnswer(ctx.Request.Context(), claims.UserID, question)
	if err != nil {
		if errors.Is(err, util.ErrSampleRequiresPlan) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, sample)
}

// Sessions godoc
// @Summary Practice session history
// @Description Lists the user's past sessions in the order they happened
// @Tags practice
// @Produce  json
// @Security ApiKeyAuth
// @Param   topic query string false "Filter by topic"
// @Success 200 {object} util.Response{data=[]model.PracticeSession} "OK"
// @Router /api/sessions [get]
func (c *PracticeController) Sessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.PracticeService.Sessions(claims.UserID, ctx.Query("topic"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}
