package controller

import (
	"errors"
	"sdet_prep_backend/internal/service"
	"sdet_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecordingController struct {
	RecordingService *service.RecordingService
}

func NewRecordingController(recordingService *service.RecordingService) *RecordingController {
	return &RecordingController{RecordingService: recordingService}
}

// Upload godoc
// @Summary Upload an answer recording
// @Description Accepts an audio file and returns its id for evaluation
// @Tags recordings
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "Audio recording (m4a, mp3, wav, webm, ogg)"
// @Success 201 {object} util.Response{data=model.Recording} "Created"
// @Failure 400 {object} util.Response "Missing or unsupported file"
// @Router /api/recordings [post]
func (c *RecordingController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	recording, err := c.RecordingService.SaveUpload(ctx.Request.Context(), claims.UserID, fileHeader)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedAudioType) {
			util.BadRequest(ctx, "unsupported audio format")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, recording)
}
