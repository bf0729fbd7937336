package model

import "time"

// BillingPlan is the subscription plan of an organization.
type BillingPlan string

const (
	PlanFree       BillingPlan = "free"
	PlanStartup    BillingPlan = "startup"
	PlanScale      BillingPlan = "scale"
	PlanEnterprise BillingPlan = "enterprise"
)

// MonthlyLimits caps monthly usage. Nil means unlimited.
type MonthlyLimits struct {
	Responses *int `json:"responses"`
	MIU       *int `json:"miu"`
}

// BillingLimits caps an organization's usage.
type BillingLimits struct {
	Projects *int          `json:"projects"`
	Monthly  MonthlyLimits `json:"monthly"`
}

// OrganizationBilling is the billing document stored on an organization.
type OrganizationBilling struct {
	Plan             BillingPlan   `json:"plan"`
	Period           string        `json:"period"`
	PeriodStart      *time.Time    `json:"periodStart"`
	StripeCustomerID *string       `json:"stripeCustomerId"`
	Limits           BillingLimits `json:"limits"`
}

// ProjectLanguage is a language configured on a project.
type ProjectLanguage struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Alias string `json:"alias,omitempty"`
}

// ProjectWithLanguages is the project owning an environment.
type ProjectWithLanguages struct {
	ID        string            `json:"id"`
	Languages []ProjectLanguage `json:"languages"`
}
