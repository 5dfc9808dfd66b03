package model

// Recording is an uploaded answer audio file. LocalPath points at the staging
// copy used for transcription; StorageURL is the retained copy in the
// configured storage provider.
type Recording struct {
	UUIDBase
	UserID          uint    `gorm:"index;not null" json:"userId"`
	FileName        string  `gorm:"size:255" json:"fileName"`
	ContentType     string  `gorm:"size:100" json:"contentType"`
	SizeBytes       int64   `json:"sizeBytes"`
	DurationSeconds float64 `json:"durationSeconds"`
	LocalPath       string  `gorm:"size:500" json:"-"`
	StorageURL      string  `gorm:"size:500" json:"storageUrl"`
}

func (Recording) TableName() string {
	return "recordings"
}
