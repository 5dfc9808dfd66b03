package model

// PracticeSession is one completed question/answer round. Rows are immutable
// once created and only appended by the session repository; duplicates are
// legal.
type PracticeSession struct {
	UUIDBase
	UserID                uint     `gorm:"index;not null" json:"userId"`
	Topic                 string   `gorm:"size:100;index" json:"topic"`
	Question              string   `gorm:"type:text" json:"question"`
	Transcript            string   `gorm:"type:text" json:"transcript"`
	Feedback              string   `gorm:"type:text" json:"feedback"`
	AnswerDurationSeconds float64  `json:"answerDurationSeconds"`
	TechnicalScore        int      `json:"technicalScore"`
	CommunicationScore    int      `json:"communicationScore"`
	OverallScore          int      `json:"overallScore"`
	Strengths             []string `gorm:"serializer:json;type:json" json:"strengths"`
	Improvements          []string `gorm:"serializer:json;type:json" json:"improvements"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}
