package reco

import (
	"math/rand"

	"sukiMarket/domain"
)

const seedModulus = 1<<31 - 1

// DeriveSeed mixes the request identity with the newest event and listing
// ids. Identical inputs reproduce the exploration slice exactly; any new
// event or listing rotates it naturally. Always positive.
func DeriveSeed(buyerID uint64, page int, lastEventID, lastProductID uint64) int64 {
	mixed := buyerID*1000003 +
		uint64(page)*9176 +
		lastEventID*1013 +
		lastProductID*7919

	seed := int64(mixed % seedModulus)
	if seed <= 0 {
		seed = 1
	}
	return seed
}

// MixPage splits a page into a deterministic head sliced out of the ranked
// pool and a reproducibly shuffled exploration tail drawn from the rest.
// When the pool is smaller than the page the shortfall stays unfilled.
func MixPage(ranked []domain.ProductCandidate, page, pageSize, randomCount int, seed int64) []domain.ProductCandidate {
	deterministicCount := pageSize - randomCount
	if deterministicCount < 0 {
		deterministicCount = 0
	}

	head := []domain.ProductCandidate{}
	if deterministicCount > 0 {
		start := (page - 1) * deterministicCount
		if start > len(ranked) {
			start = len(ranked)
		}
		end := start + deterministicCount
		if end > len(ranked) {
			end = len(ranked)
		}
		head = ranked[start:end]
	}

	headIDs := map[uint64]struct{}{}
	for _, c := range head {
		headIDs[c.ID] = struct{}{}
	}

	pool := make([]domain.ProductCandidate, 0, len(ranked))
	for _, c := range ranked {
		if _, ok := headIDs[c.ID]; !ok {
			pool = append(pool, c)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > randomCount {
		pool = pool[:randomCount]
	}

	combined := make([]domain.ProductCandidate, 0, len(head)+len(pool))
	combined = append(combined, head...)
	combined = append(combined, pool...)
	if len(combined) > pageSize {
		combined = combined[:pageSize]
	}

	return combined
}
