package model

// HistoryScore is one stored class score of a past classification.
type HistoryScore struct {
	ClassName string  `json:"className" yaml:"className"`
	Score     float64 `json:"score" yaml:"score"`
}

// HistoryEntry is one past classification owned by the history service.
type HistoryEntry struct {
	CreatedAt      Timestamp      `json:"createdAt" yaml:"createdAt"`
	ID             EntryID        `json:"id" yaml:"id"`
	PredictedClass string         `json:"predictedClass" yaml:"predictedClass"`
	ImageName      string         `json:"imageName" yaml:"imageName"`
	Scores         []HistoryScore `json:"scores,omitempty" yaml:"scores,omitempty"`
	Confidence     float64        `json:"confidence" yaml:"confidence"`
}
