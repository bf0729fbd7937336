package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// BillingCache is a read-through cache for organization billing lookups.
// Store failures are logged and the lookup falls through to the repository.
type BillingCache struct {
	store Store
	next  repository.OrganizationRepository
	ttl   time.Duration
	log   zerolog.Logger
}

var _ repository.OrganizationRepository = (*BillingCache)(nil)

// NewBillingCache decorates next with store.
func NewBillingCache(store Store, next repository.OrganizationRepository, ttl time.Duration, log zerolog.Logger) *BillingCache {
	return &BillingCache{
		store: store,
		next:  next,
		ttl:   ttl,
		log:   log.With().Str("component", "cache").Logger(),
	}
}

// BillingKey is the cache key of an environment's organization billing.
func BillingKey(environmentID string) string {
	return "billing:env:" + environmentID
}

func (c *BillingCache) FindBillingByEnvironmentID(ctx context.Context, environmentID string) (*model.OrganizationBilling, error) {
	key := BillingKey(environmentID)

	b, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var billing model.OrganizationBilling
		if err := json.Unmarshal(b, &billing); err == nil {
			return &billing, nil
		}
		c.log.Warn().Str("key", key).Msg("dropping undecodable cache entry")
		_ = c.store.Del(ctx, key)
	case !errors.Is(err, ErrMiss):
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	billing, err := c.next.FindBillingByEnvironmentID(ctx, environmentID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(billing); err == nil {
		if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return billing, nil
}
