package model

// EnvironmentType separates production from development data of a project.
type EnvironmentType string

const (
	EnvironmentProduction  EnvironmentType = "production"
	EnvironmentDevelopment EnvironmentType = "development"
)

// Environment is a project environment. Surveys, segments and action classes live in one.
type Environment struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"projectId"`
	Type      EnvironmentType `json:"type"`
}
