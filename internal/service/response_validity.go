package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"surveyapi/internal/crypto"
	"surveyapi/internal/errs"
	"surveyapi/internal/model"
	"surveyapi/internal/recaptcha"
	"surveyapi/internal/repository"
)

const recaptchaFailedCode = "recaptcha_verification_failed"

// SpamProtection tells whether an organization's plan includes reCAPTCHA gating.
type SpamProtection interface {
	IsSpamProtectionEnabled(plan model.BillingPlan) bool
}

// ResponseValidator decides whether a response submission may be stored.
type ResponseValidator struct {
	orgs          repository.OrganizationRepository
	spam          SpamProtection
	verifier      recaptcha.Verifier
	encryptionKey string
	log           zerolog.Logger
}

// NewResponseValidator constructs a ResponseValidator.
func NewResponseValidator(
	orgs repository.OrganizationRepository,
	spam SpamProtection,
	verifier recaptcha.Verifier,
	encryptionKey string,
	log zerolog.Logger,
) *ResponseValidator {
	return &ResponseValidator{
		orgs:          orgs,
		spam:          spam,
		verifier:      verifier,
		encryptionKey: encryptionKey,
		log:           log,
	}
}

// CheckSurveyValidity returns nil when the submission may proceed, or the
// HTTP error to send back otherwise.
func (v *ResponseValidator) CheckSurveyValidity(ctx context.Context, survey *model.Survey, environmentID string, input *model.ResponseInput) *errs.RequestError {
	if survey.EnvironmentID != environmentID {
		return errs.BadRequest("Survey is part of another environment", map[string]any{
			"survey.environmentId": survey.EnvironmentID,
			"environmentId":        environmentID,
		})
	}

	if survey.SingleUse != nil && survey.SingleUse.Enabled {
		if reqErr := v.checkSingleUse(survey, environmentID, input); reqErr != nil {
			return reqErr
		}
	}

	if survey.Recaptcha != nil && survey.Recaptcha.Enabled {
		return v.checkRecaptcha(ctx, survey, environmentID, input)
	}

	return nil
}

func (v *ResponseValidator) checkSingleUse(survey *model.Survey, environmentID string, input *model.ResponseInput) *errs.RequestError {
	details := map[string]any{
		"surveyId":      survey.ID,
		"environmentId": environmentID,
	}

	if input.SingleUseID == "" {
		return errs.BadRequest("Missing single use id", details)
	}
	if input.Meta.URL == "" {
		return errs.BadRequest("Missing or invalid URL in response metadata", details)
	}

	u, err := parseAbsoluteURL(input.Meta.URL)
	if err != nil {
		return errs.BadRequest("Invalid URL in response metadata", map[string]any{
			"surveyId":      survey.ID,
			"environmentId": environmentID,
			"error":         err.Error(),
		})
	}

	suID := u.Query().Get("suId")
	if suID == "" {
		return errs.BadRequest("Missing single use id", details)
	}

	if survey.SingleUse.IsEncrypted {
		decrypted, err := crypto.SymmetricDecrypt(suID, v.encryptionKey)
		if err != nil {
			v.log.Warn().Err(err).Str("survey_id", survey.ID).Msg("failed to decrypt single use id")
			return errs.BadRequest("Invalid single use id", details)
		}
		if decrypted != input.SingleUseID {
			return errs.BadRequest("Invalid single use id", details)
		}
	} else if suID != input.SingleUseID {
		return errs.BadRequest("Invalid single use id", details)
	}

	return nil
}

func (v *ResponseValidator) checkRecaptcha(ctx context.Context, survey *model.Survey, environmentID string, input *model.ResponseInput) *errs.RequestError {
	if input.RecaptchaToken == "" {
		v.log.Error().Msg("Missing recaptcha token")
		return errs.BadRequest("Missing recaptcha token", map[string]any{"code": recaptchaFailedCode})
	}

	billing, err := v.orgs.FindBillingByEnvironmentID(ctx, environmentID)
	if err != nil {
		v.log.Error().Err(err).Str("environment_id", environmentID).Msg("Error getting organization billing")
		billing = nil
	}
	if billing == nil {
		return errs.NotFound("Organization", nil)
	}

	if !v.spam.IsSpamProtectionEnabled(billing.Plan) {
		v.log.Error().Msg("Spam protection is not enabled for this organization")
		return nil
	}

	if !v.verifier.Verify(ctx, input.RecaptchaToken, survey.Recaptcha.Threshold) {
		return errs.BadRequest("reCAPTCHA verification failed", map[string]any{"code": recaptchaFailedCode})
	}

	return nil
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: scheme and host are required", raw)
	}
	return u, nil
}
