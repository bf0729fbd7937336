package model

import "encoding/json"

// TriggerMode tells how a copied trigger resolves its action class in the target environment.
type TriggerMode int

const (
	// TriggerConnect reuses ActionClass.ID as is.
	TriggerConnect TriggerMode = iota
	// TriggerUpsertByKey reuses the class with the same key or creates it.
	TriggerUpsertByKey
	// TriggerUpsertByName reuses the class with the same name or creates it.
	TriggerUpsertByName
	// TriggerCreate always inserts a new class.
	TriggerCreate
)

// TriggerPlan describes one trigger of a survey copy.
type TriggerPlan struct {
	Mode        TriggerMode
	ActionClass ActionClass
}

// LanguagePlan links a copied survey to a language of the target project,
// creating the language when the project does not have it yet.
type LanguagePlan struct {
	ProjectID string
	Code      string
	Alias     string
	Default   bool
	Enabled   bool
}

// SegmentPlan either connects an existing segment or creates a new one.
type SegmentPlan struct {
	ConnectID string
	Create    *Segment
}

// SurveyCopyPlan is everything written when a survey is copied.
type SurveyCopyPlan struct {
	ID                  string
	Name                string
	Type                SurveyType
	Status              SurveyStatus
	EnvironmentID       string
	CreatedBy           string
	WelcomeCard         json.RawMessage
	Questions           json.RawMessage
	Endings             json.RawMessage
	Variables           json.RawMessage
	HiddenFields        json.RawMessage
	SurveyClosedMessage json.RawMessage
	SingleUse           json.RawMessage
	ProjectOverwrites   json.RawMessage
	Styling             json.RawMessage
	Languages           []LanguagePlan
	Triggers            []TriggerPlan
	Segment             *SegmentPlan
	FollowUps           []SurveyFollowUp
}
