package model

import (
	"encoding/json"
	"time"
)

// ResponseMeta describes where a response was submitted from.
type ResponseMeta struct {
	Source    string `json:"source,omitempty"`
	URL       string `json:"url,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Country   string `json:"country,omitempty"`
	Action    string `json:"action,omitempty"`
}

// ResponseInput is a response submission from the client API.
type ResponseInput struct {
	SurveyID       string                     `json:"surveyId" validate:"required,uuid"`
	EnvironmentID  string                     `json:"environmentId"`
	Data           map[string]json.RawMessage `json:"data"`
	Finished       bool                       `json:"finished"`
	TTC            map[string]float64         `json:"ttc,omitempty"`
	Meta           ResponseMeta               `json:"meta"`
	Variables      map[string]json.RawMessage `json:"variables,omitempty"`
	SingleUseID    string                     `json:"singleUseId,omitempty"`
	Language       string                     `json:"language,omitempty"`
	DisplayID      string                     `json:"displayId,omitempty" validate:"omitempty,uuid"`
	EndingID       string                     `json:"endingId,omitempty"`
	RecaptchaToken string                     `json:"recaptchaToken,omitempty"`
}

// Response is a stored survey response.
type Response struct {
	ID          string                     `json:"id"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
	SurveyID    string                     `json:"surveyId"`
	Finished    bool                       `json:"finished"`
	Data        map[string]json.RawMessage `json:"data"`
	Meta        ResponseMeta               `json:"meta"`
	TTC         map[string]float64         `json:"ttc"`
	Variables   map[string]json.RawMessage `json:"variables"`
	SingleUseID *string                    `json:"singleUseId"`
	Language    *string                    `json:"language"`
	DisplayID   *string                    `json:"displayId"`
	EndingID    *string                    `json:"endingId"`
}
