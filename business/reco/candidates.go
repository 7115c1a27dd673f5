package reco

import (
	"context"
	"fmt"

	"sukiMarket/domain"
)

const (
	// Candidate rows fetched per query and hard cap on the combined pool.
	maxCandidatePool = 600

	// Below this pool size the filtered query is considered too narrow and
	// the source broadens to the unfiltered feed.
	minCandidatePool = 200
)

// sourceCandidates is the two-stage candidate pipeline. Stage one applies
// the affinity/locality filter; when it yields a pool under
// minCandidatePool, stage two re-queries without the filter and appends
// unseen, not-yet-known rows until maxCandidatePool or exhaustion. Buyers
// with narrow or empty affinity still get a full pool.
func (s *RecoService) sourceCandidates(ctx context.Context, profile AffinityProfile, buyer BuyerLocation) ([]domain.ProductCandidate, error) {
	filter := domain.CandidateFilter{
		ExcludeProductIDs: profile.SeenProductIDs,
		TopCategories:     profile.TopCategories,
		TopSellers:        profile.TopSellers,
		BuyerDormitoryID:  buyer.DormitoryID,
		BuyerUniversityID: buyer.UniversityID,
		Limit:             maxCandidatePool,
	}

	candidates, err := s.productRepo.FindCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("filtered candidate query: %w", err)
	}

	if len(candidates) >= minCandidatePool {
		return candidates, nil
	}

	CandidatePoolBroadenedTotal.Inc()

	broadened, err := s.productRepo.FindCandidates(ctx, domain.CandidateFilter{
		Limit: maxCandidatePool,
	})
	if err != nil {
		return nil, fmt.Errorf("broadened candidate query: %w", err)
	}

	known := map[uint64]struct{}{}
	for _, c := range candidates {
		known[c.ID] = struct{}{}
	}

	for _, c := range broadened {
		if len(candidates) >= maxCandidatePool {
			break
		}
		if _, ok := known[c.ID]; ok {
			continue
		}
		if profile.Seen(c.ID) {
			continue
		}
		candidates = append(candidates, c)
		known[c.ID] = struct{}{}
	}

	return candidates, nil
}
