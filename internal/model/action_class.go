package model

import "encoding/json"

// ActionClassType tells how an action is detected in the client.
type ActionClassType string

const (
	ActionClassTypeCode   ActionClassType = "code"
	ActionClassTypeNoCode ActionClassType = "noCode"
)

// ActionClass is a user action that can trigger an app survey.
type ActionClass struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Type          ActionClassType `json:"type"`
	Key           *string         `json:"key"`
	NoCodeConfig  json.RawMessage `json:"noCodeConfig"`
	EnvironmentID string          `json:"environmentId"`
}
