package controller

import (
	"errors"
	"sdet_prep_backend/internal/service"
	"sdet_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// ListTopics godoc
// @Summary List interview topics
// @Description Returns every topic with its question pool size
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TopicSummary} "OK"
// @Router /api/topics [get]
func (c *QuestionController) ListTopics(ctx *gin.Context) {
	topics, err := c.QuestionService.Topics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// RandomQuestion godoc
// @Summary Random question for a topic
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   topic path string true "Topic name"
// @Success 200 {object} util.Response{data=model.InterviewQuestion} "OK"
// @Failure 404 {object} util.Response "Unknown topic"
// @Router /api/topics/{topic}/question [get]
func (c *QuestionController) RandomQuestion(ctx *gin.Context) {
	question, err := c.QuestionService.RandomQuestion(ctx.Param("topic"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "no questions for this topic")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// RandomAnyQuestion godoc
// @Summary Random question across all topics
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.InterviewQuestion} "OK"
// @Failure 404 {object} util.Response "Empty question bank"
// @Router /api/questions/random [get]
func (c *QuestionController) RandomAnyQuestion(ctx *gin.Context) {
	question, err := c.QuestionService.RandomAnyQuestion()
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "question bank is empty")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// Templates godoc
// @Summary Answer templates for a topic
// @Description Curated model-answer templates with key points and common mistakes
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   topic path string true "Topic name"
// @Success 200 {object} util.Response{data=[]model.AnswerTemplate} "OK"
// @Failure 404 {object} util.Response "No templates"
// @Router /api/templates/{topic} [get]
func (c *QuestionController) Templates(ctx *gin.Context) {
	templates, err := c.QuestionService.TemplatesForTopic(ctx.Param("topic"))
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx, "no templates for this topic")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, templates)
}
