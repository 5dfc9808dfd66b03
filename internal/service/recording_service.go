package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"sdet_prep_backend/internal/config"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/internal/util"
	"sdet_prep_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

// RecordingRepo is the persistence surface for uploaded recordings.
type RecordingRepo interface {
	Create(recording *model.Recording) error
	FindByIDForUser(id string, userID uint) (*model.Recording, error)
}

// RecordingService accepts answer recordings, verifies they are audio,
// measures their duration and hands them to the storage provider. A local
// staging copy is always kept because the transcription stage reads from
// disk.
type RecordingService struct {
	repo    RecordingRepo
	storage *StorageService
	cfg     *config.Config
}

func NewRecordingService(repo RecordingRepo, storage *StorageService, cfg *config.Config) *RecordingService {
	return &RecordingService{repo: repo, storage: storage, cfg: cfg}
}

// SaveUpload stages the uploaded file, probes it and records its metadata.
func (s *RecordingService) SaveUpload(ctx context.Context, userID uint, fileHeader *multipart.FileHeader) (*model.Recording, error) {
	if !util.IsAllowedAudioExtension(fileHeader.Filename) {
		return nil, util.ErrUnsupportedAudioType
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType, err := util.ValidateMimeType(file, []string{"audio/", "video/mp4", util.MimeOctetStream})
	if err != nil {
		return nil, util.ErrUnsupportedAudioType
	}

	recording := &model.Recording{
		UserID:      userID,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
	}
	recording.ID = model.GenerateUUID()

	objectName := fmt.Sprintf("recordings/%d/%s%s", userID, recording.ID, ext)
	localPath := filepath.Join(s.cfg.Storage.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return nil, err
	}

	staged, err := os.Create(localPath)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		staged.Close()
		return nil, err
	}
	if _, err := staged.ReadFrom(file); err != nil {
		staged.Close()
		return nil, err
	}
	staged.Close()
	recording.LocalPath = localPath

	info, err := util.ProbeAudio(localPath)
	if err != nil {
		// Duration is advisory; a probe failure should not reject the upload.
		logger.Log.Warn("audio probe failed", zap.String("path", localPath), zap.Error(err))
	} else {
		recording.DurationSeconds = info.Duration
	}

	url, err := s.storage.UploadFile(ctx, objectName, localPath, contentType)
	if err != nil {
		os.Remove(localPath)
		return nil, err
	}
	recording.StorageURL = url

	if err := s.repo.Create(recording); err != nil {
		os.Remove(localPath)
		return nil, err
	}
	return recording, nil
}
