// Package license decides which organizations get paid features.
package license

import (
	"surveyapi/internal/config"
	"surveyapi/internal/model"
)

// Checker answers feature-availability questions for an organization.
type Checker struct {
	recaptcha config.RecaptchaConfig
	billing   config.BillingConfig
}

// NewChecker builds a Checker.
func NewChecker(recaptcha config.RecaptchaConfig, billing config.BillingConfig) *Checker {
	return &Checker{recaptcha: recaptcha, billing: billing}
}

// IsSpamProtectionEnabled reports whether reCAPTCHA gating is available for plan.
// Cloud instances decide by plan; self-hosted instances by licence.
func (c *Checker) IsSpamProtectionEnabled(plan model.BillingPlan) bool {
	if !c.recaptcha.Configured() {
		return false
	}
	if c.billing.IsCloud {
		return plan == model.PlanScale || plan == model.PlanEnterprise
	}
	return c.billing.SpamProtectionLicensed
}
