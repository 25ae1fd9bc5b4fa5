package cache

import (
	"strings"
	"time"

	"github.com/turmapay/turmapay/internal/clock"
)

const defaultProfileValidationTTL = 10 * time.Minute

// ProfileValidationCache memoizes billing-profile validation verdicts so
// repeated customer resolutions skip re-checking an unchanged profile.
type ProfileValidationCache interface {
	IsValid(studentID string) bool
	MarkValid(studentID string)
	Invalidate(studentID string)
}

type profileValidationCache struct {
	verdicts Cache[string, struct{}]
	ttl      time.Duration
}

// NewProfileValidationCache returns an in-memory validation cache.
func NewProfileValidationCache(c clock.Clock) ProfileValidationCache {
	return &profileValidationCache{
		verdicts: NewTTLCache[string, struct{}](c),
		ttl:      defaultProfileValidationTTL,
	}
}

func (c *profileValidationCache) IsValid(studentID string) bool {
	_, ok := c.verdicts.Get(validationKey(studentID))
	return ok
}

func (c *profileValidationCache) MarkValid(studentID string) {
	if strings.TrimSpace(studentID) == "" {
		return
	}
	c.verdicts.Set(validationKey(studentID), struct{}{}, c.ttl)
}

func (c *profileValidationCache) Invalidate(studentID string) {
	c.verdicts.Delete(validationKey(studentID))
}

func validationKey(studentID string) string {
	return strings.ToLower(strings.TrimSpace(studentID))
}
