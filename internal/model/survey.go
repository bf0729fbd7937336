package model

import (
	"encoding/json"
	"time"
)

// SurveyType distinguishes link surveys from in-app surveys.
type SurveyType string

const (
	SurveyTypeLink SurveyType = "link"
	SurveyTypeApp  SurveyType = "app"
)

// SurveyStatus is the lifecycle state of a survey.
type SurveyStatus string

const (
	SurveyStatusDraft      SurveyStatus = "draft"
	SurveyStatusScheduled  SurveyStatus = "scheduled"
	SurveyStatusInProgress SurveyStatus = "inProgress"
	SurveyStatusPaused     SurveyStatus = "paused"
	SurveyStatusCompleted  SurveyStatus = "completed"
)

// SingleUseSettings controls single-use links. When IsEncrypted is set, the suId
// query parameter of a link carries the encrypted single-use id.
type SingleUseSettings struct {
	Enabled     bool `json:"enabled"`
	IsEncrypted bool `json:"isEncrypted"`
}

// RecaptchaSettings enables spam gating for responses.
type RecaptchaSettings struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"`
}

// Survey is the subset of a survey needed to accept responses.
type Survey struct {
	ID            string             `json:"id"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Name          string             `json:"name"`
	Type          SurveyType         `json:"type"`
	Status        SurveyStatus       `json:"status"`
	EnvironmentID string             `json:"environmentId"`
	CreatedBy     *string            `json:"createdBy"`
	SegmentID     *string            `json:"segmentId"`
	SingleUse     *SingleUseSettings `json:"singleUse"`
	Recaptcha     *RecaptchaSettings `json:"recaptcha"`
}

// SurveyCreator is the public part of the user who created a survey.
type SurveyCreator struct {
	Name string `json:"name"`
}

// SurveySummary is a survey as shown in survey lists.
type SurveySummary struct {
	ID            string             `json:"id"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Name          string             `json:"name"`
	Type          SurveyType         `json:"type"`
	Creator       *SurveyCreator     `json:"creator"`
	Status        SurveyStatus       `json:"status"`
	SingleUse     *SingleUseSettings `json:"singleUse"`
	EnvironmentID string             `json:"environmentId"`
	ResponseCount int                `json:"responseCount"`
}

// SortBy names a survey list ordering.
type SortBy string

const (
	SortByName      SortBy = "name"
	SortByCreatedAt SortBy = "createdAt"
	SortByUpdatedAt SortBy = "updatedAt"
	SortByRelevance SortBy = "relevance"
)

// CreatedByFilter narrows a list to surveys created by the caller ("you"),
// by anybody else ("others"), or both.
type CreatedByFilter struct {
	Value  []string `json:"value"`
	UserID string   `json:"userId"`
}

// SurveyFilterCriteria narrows and orders survey lists.
type SurveyFilterCriteria struct {
	Name      string           `json:"name,omitempty"`
	Status    []SurveyStatus   `json:"status,omitempty"`
	Type      []SurveyType     `json:"type,omitempty"`
	CreatedBy *CreatedByFilter `json:"createdBy,omitempty"`
	SortBy    SortBy           `json:"sortBy,omitempty"`
}

// SurveyLanguage links a survey to a project language.
type SurveyLanguage struct {
	Default bool   `json:"default"`
	Enabled bool   `json:"enabled"`
	Code    string `json:"code"`
	Alias   string `json:"alias,omitempty"`
}

// SurveyFollowUp is an automation run after a response.
type SurveyFollowUp struct {
	Name    string          `json:"name"`
	Trigger json.RawMessage `json:"trigger"`
	Action  json.RawMessage `json:"action"`
}

// SurveyCopySource holds everything a copy of a survey is built from.
// JSON columns are carried verbatim.
type SurveyCopySource struct {
	ID                  string
	Name                string
	Type                SurveyType
	Languages           []SurveyLanguage
	WelcomeCard         json.RawMessage
	Questions           json.RawMessage
	Endings             json.RawMessage
	Variables           json.RawMessage
	HiddenFields        json.RawMessage
	SurveyClosedMessage json.RawMessage
	SingleUse           json.RawMessage
	ProjectOverwrites   json.RawMessage
	Styling             json.RawMessage
	Segment             *Segment
	FollowUps           []SurveyFollowUp
	Triggers            []ActionClass
}

// CopiedActionClass identifies the action class a copied trigger points at.
type CopiedActionClass struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EnvironmentID string `json:"environmentId"`
}

// CopiedTrigger is a trigger of a copied survey.
type CopiedTrigger struct {
	ActionClass CopiedActionClass `json:"actionClass"`
}

// CopiedLanguage is a language of a copied survey.
type CopiedLanguage struct {
	Code string `json:"code"`
}

// SegmentRef identifies a segment.
type SegmentRef struct {
	ID string `json:"id"`
}

// CopiedSurvey is the result of copying a survey.
type CopiedSurvey struct {
	ID            string           `json:"id"`
	EnvironmentID string           `json:"environmentId"`
	Segment       *SegmentRef      `json:"segment"`
	Triggers      []CopiedTrigger  `json:"triggers"`
	Languages     []CopiedLanguage `json:"languages"`
}

// DeletedSegment is the segment a deleted survey pointed at.
type DeletedSegment struct {
	ID        string
	IsPrivate bool
}

// DeletedSurvey describes a survey row removed by a delete.
type DeletedSurvey struct {
	ID                   string
	EnvironmentID        string
	Type                 SurveyType
	Segment              *DeletedSegment
	TriggerActionClassID []string
}
