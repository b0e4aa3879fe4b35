package usecase

import (
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/match"
)

const defaultStaleThreshold = 3 * time.Hour

// StalenessPolicy decides whether a fetched snapshot may replace a stored match.
type StalenessPolicy struct {
	// Threshold is how long after kickoff a pending status stops being trusted.
	Threshold time.Duration
}

func NewStalenessPolicy(threshold time.Duration) StalenessPolicy {
	if threshold <= 0 {
		threshold = defaultStaleThreshold
	}
	return StalenessPolicy{Threshold: threshold}
}

// ShouldAccept rejects a pending snapshot for a stored match whose kickoff is
// more than Threshold in the past. A match seen for the first time is always accepted.
func (p StalenessPolicy) ShouldAccept(stored *match.Match, incoming match.Match, now time.Time) bool {
	if stored == nil {
		return true
	}
	if !match.IsPending(incoming.Status) || incoming.KickoffAt == nil {
		return true
	}

	threshold := p.Threshold
	if threshold <= 0 {
		threshold = defaultStaleThreshold
	}
	return now.Sub(*incoming.KickoffAt) <= threshold
}
