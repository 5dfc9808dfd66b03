package model

// EntitlementState holds a user's daily quota state under the free/premium
// model. One row per user, created lazily with defaults and only ever
// overwritten, never deleted. LastResetDate and LastIntroDate are local
// calendar dates ("2006-01-02"), not timestamps: the daily reset compares
// calendar days, not elapsed hours.
type EntitlementState struct {
	BaseModel
	UserID              uint   `gorm:"uniqueIndex;not null" json:"userId"`
	IsPremium           bool   `gorm:"default:false" json:"isPremium"`
	QuestionsAskedToday int    `gorm:"default:0" json:"questionsAskedToday"`
	LastResetDate       string `gorm:"size:10" json:"lastResetDate"`
	LastIntroDate       string `gorm:"size:10" json:"-"`
}

func (EntitlementState) TableName() string {
	return "entitlement_states"
}
