package model

import (
	"encoding/json"
	"time"
)

// Segment is a saved audience filter. Private segments belong to a single survey.
type Segment struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	IsPrivate     bool            `json:"isPrivate"`
	Filters       json.RawMessage `json:"filters"`
	EnvironmentID string          `json:"environmentId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SurveySegment is the outcome of loading a segment into a survey.
type SurveySegment struct {
	SurveyID string   `json:"id"`
	Segment  *Segment `json:"segment"`
}
