package model

// InterviewQuestion is one entry of the question bank, one row per
// (topic, question) pair.
type InterviewQuestion struct {
	BaseModel
	Topic string `gorm:"size:100;index;not null" json:"topic"`
	Text  string `gorm:"type:text;not null" json:"text"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}
