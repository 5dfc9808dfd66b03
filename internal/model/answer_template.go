package model

// AnswerTemplate is a curated model answer for a known interview question,
// shown alongside AI-generated sample answers.
type AnswerTemplate struct {
	BaseModel
	Topic          string   `gorm:"size:100;index;not null" json:"topic"`
	Question       string   `gorm:"type:text;not null" json:"question"`
	Template       string   `gorm:"type:text" json:"template"`
	KeyPoints      []string `gorm:"serializer:json;type:json" json:"keyPoints"`
	CommonMistakes []string `gorm:"serializer:json;type:json" json:"commonMistakes"`
	Tips           []string `gorm:"serializer:json;type:json" json:"tips"`
}

func (AnswerTemplate) TableName() string {
	return "answer_templates"
}
