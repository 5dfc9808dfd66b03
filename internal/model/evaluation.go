package model

// EvaluationResult is the pipeline output for one answered question. It is
// transient: not persisted directly, only derived into PracticeSession and
// TopicProgress rows. All scores are integers in [0,100]. For non-premium
// evaluations OverallScore is fixed at 0, distinguishing "not computed" from
// a computed zero.
type EvaluationResult struct {
	Feedback           string   `json:"feedback"`
	TechnicalScore     int      `json:"technicalScore"`
	CommunicationScore int      `json:"communicationScore"`
	OverallScore       int      `json:"overallScore"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
	SampleCode         string   `json:"sampleCode,omitempty"`
	RelatedConcepts    []string `json:"relatedConcepts"`
}

// SampleAnswer is the structured model answer generated for premium users.
type SampleAnswer struct {
	MainAnswer     string   `json:"mainAnswer"`
	KeyPoints      []string `json:"keyPoints"`
	CodeExample    string   `json:"codeExample,omitempty"`
	BestPractices  []string `json:"bestPractices"`
	CommonPitfalls []string `json:"commonPitfalls"`
}
