package reco

import (
	"math"
	"sort"
	"strings"
	"time"

	"sukiMarket/domain"
)

const (
	// Fewer events than this and personalization scores are not trusted.
	lowBehaviorThreshold = 5

	// Seen-item exclusion stops tracking past this many distinct products.
	maxTrackedSeenProducts = 2000

	// Categories/sellers carried into the candidate filter.
	affinityTopN = 10

	// Days for the affinity weight to decay by 1/e.
	affinityDecayDays = 14.0
)

// AffinityProfile is the aggregate of a buyer's recent behavior: accumulated
// per-category and per-seller weights, the products already interacted with,
// and the flag selecting the ranking policy. Built once per request by a
// single fold over the event stream; callers treat it as read-only.
type AffinityProfile struct {
	CategoryScores map[uint64]float64
	SellerScores   map[uint64]float64
	TopCategories  []uint64
	TopSellers     []uint64
	SeenProductIDs []uint64
	LowBehavior    bool

	seen map[uint64]struct{}
}

// Seen reports whether the buyer already interacted with the product.
func (p AffinityProfile) Seen(productID uint64) bool {
	_, ok := p.seen[productID]
	return ok
}

// BuildAffinityProfile folds the event sequence (newest first) into an
// affinity profile. Each event contributes its type weight, decayed by age
// and boosted by recency rank.
func BuildAffinityProfile(events []domain.BehavioralEvent, now time.Time) AffinityProfile {
	profile := AffinityProfile{
		CategoryScores: map[uint64]float64{},
		SellerScores:   map[uint64]float64{},
		LowBehavior:    len(events) < lowBehaviorThreshold,
		seen:           map[uint64]struct{}{},
	}

	// first-accumulation order, for stable tie-breaking in the top lists
	categoryOrder := []uint64{}
	sellerOrder := []uint64{}

	for idx, event := range events {
		w := eventWeight(event.EventType)
		w *= timeDecay(event.OccurredAt, now)
		w *= rankBoost(idx)

		if event.ProductID != nil && len(profile.SeenProductIDs) < maxTrackedSeenProducts {
			if _, ok := profile.seen[*event.ProductID]; !ok {
				profile.seen[*event.ProductID] = struct{}{}
				profile.SeenProductIDs = append(profile.SeenProductIDs, *event.ProductID)
			}
		}

		if event.CategoryID != nil {
			if _, ok := profile.CategoryScores[*event.CategoryID]; !ok {
				categoryOrder = append(categoryOrder, *event.CategoryID)
			}
			profile.CategoryScores[*event.CategoryID] += w
		}

		if event.SellerID != nil {
			if _, ok := profile.SellerScores[*event.SellerID]; !ok {
				sellerOrder = append(sellerOrder, *event.SellerID)
			}
			profile.SellerScores[*event.SellerID] += w
		}
	}

	profile.TopCategories = topKeys(profile.CategoryScores, categoryOrder, affinityTopN)
	profile.TopSellers = topKeys(profile.SellerScores, sellerOrder, affinityTopN)

	return profile
}

func eventWeight(eventType string) float64 {
	switch normalizeEventType(eventType) {
	case "favorite", "favourite":
		return 3.0
	case "offer", "make_offer":
		return 4.0
	case "message", "chat":
		return 2.0
	case "purchase", "buy", "transaction":
		return 5.0
	case "view", "click":
		return 1.0
	default:
		return 0.5
	}
}

func normalizeEventType(eventType string) string {
	return strings.ToLower(strings.TrimSpace(eventType))
}

func timeDecay(occurredAt, now time.Time) float64 {
	ageDays := now.Sub(occurredAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-ageDays / affinityDecayDays)
}

// rankBoost amplifies the newest interactions: the latest event dominates,
// the next few still matter, older ones fade to their decayed weight.
func rankBoost(idx int) float64 {
	switch {
	case idx == 0:
		return 6.0
	case idx < 3:
		return 4.0
	case idx < 10:
		return 2.0
	default:
		return 1.0
	}
}

// topKeys returns up to n keys ordered by score descending; ties keep
// first-accumulation order.
func topKeys(scores map[uint64]float64, order []uint64, n int) []uint64 {
	keys := make([]uint64, len(order))
	copy(keys, order)

	sort.SliceStable(keys, func(i, j int) bool {
		return scores[keys[i]] > scores[keys[j]]
	})

	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
