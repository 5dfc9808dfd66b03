package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeAudio       = "audio/"
	MimeOctetStream = "application/octet-stream"
)

// UnlimitedQuestions is the remaining-questions sentinel for premium users.
const UnlimitedQuestions = -1

// PassThreshold is the overall score (inclusive) at which an answer counts
// as correct for progress tracking.
const PassThreshold = 70

var (
	AllowedAudioExtensions = []string{".m4a", ".mp3", ".wav", ".ogg", ".flac", ".webm"}
)
