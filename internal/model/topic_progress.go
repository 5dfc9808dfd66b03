package model

import "time"

// TopicProgress accumulates per-topic running statistics. One row per
// (user, topic); averages are maintained incrementally, never recomputed
// from the session history. Strengths and AreasToImprove are snapshots of
// the most recent session, not cumulative.
type TopicProgress struct {
	BaseModel
	UserID               uint      `gorm:"not null;uniqueIndex:idx_user_topic" json:"userId"`
	Topic                string    `gorm:"size:100;not null;uniqueIndex:idx_user_topic" json:"topic"`
	QuestionsAnswered    int       `gorm:"default:0" json:"questionsAnswered"`
	CorrectAnswers       int       `gorm:"default:0" json:"correctAnswers"`
	AverageTechnical     float64   `gorm:"default:0" json:"averageTechnical"`
	AverageCommunication float64   `gorm:"default:0" json:"averageCommunication"`
	AverageScore         float64   `gorm:"default:0" json:"averageScore"`
	LastPracticeDate     time.Time `json:"lastPracticeDate"`
	Strengths            []string  `gorm:"serializer:json;type:json" json:"strengths"`
	AreasToImprove       []string  `gorm:"serializer:json;type:json" json:"areasToImprove"`
}

func (TopicProgress) TableName() string {
	return "topic_progress"
}
