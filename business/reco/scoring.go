package reco

import (
	"math"
	"sort"
	"time"

	"sukiMarket/domain"
)

const (
	categoryAffinityWeight = 1.5
	sellerAffinityWeight   = 1.0
	promotedBonus          = 3.0
	freshnessBonus         = 5.0
	freshnessDecayDays     = 7.0
	sameDormitoryBonus     = 50.0
	sameUniversityBonus    = 20.0
	proximityBonus         = 30.0
	proximityDecayKM       = 2.0

	// Distance sentinel for cold-start sorting when coordinates are unknown.
	unknownDistanceKM = 1.0e9
)

// Locality tiers, most local first.
const (
	tierSameDormitory  = 0
	tierSameUniversity = 1
	tierOther          = 2
)

// BuyerLocation is the buyer side of the locality and proximity signals.
// Coords is nil when neither the dormitory fields nor its address resolve.
type BuyerLocation struct {
	DormitoryID  *uint64
	UniversityID *uint64
	Coords       *Coordinates
}

// BuyerLocationFromDormitory derives the buyer's locality anchor from the
// resolved dormitory record, or an empty anchor when there is none.
func BuyerLocationFromDormitory(dorm *domain.Dormitory) BuyerLocation {
	if dorm == nil {
		return BuyerLocation{}
	}

	loc := BuyerLocation{
		DormitoryID:  &dorm.ID,
		UniversityID: dorm.UniversityID,
	}
	if coords, ok := ParseCoordinates(dorm.Latitude, dorm.Longitude, dorm.Address); ok {
		loc.Coords = &coords
	}
	return loc
}

// Rank scores every candidate and orders the pool under the policy selected
// by the profile: cold-start buyers get locality-first ordering, warm buyers
// get composite-score ordering. The input slice is reordered in place and
// returned; score and distance are attached to each candidate.
func Rank(candidates []domain.ProductCandidate, profile AffinityProfile, buyer BuyerLocation, now time.Time) []domain.ProductCandidate {
	scoreCandidates(candidates, profile, buyer, now)

	if profile.LowBehavior {
		rankColdStart(candidates, buyer)
	} else {
		rankWarm(candidates)
	}

	return candidates
}

// scoreCandidates attaches the composite score and the buyer distance to
// each candidate.
func scoreCandidates(candidates []domain.ProductCandidate, profile AffinityProfile, buyer BuyerLocation, now time.Time) {
	for i := range candidates {
		c := &candidates[i]
		score := 0.0

		if c.CategoryID != nil {
			score += categoryAffinityWeight * profile.CategoryScores[*c.CategoryID]
		}
		score += sellerAffinityWeight * profile.SellerScores[c.SellerID]

		if c.IsPromoted {
			score += promotedBonus
		}

		ageDays := now.Sub(c.CreatedAt).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		score += freshnessBonus * math.Exp(-ageDays/freshnessDecayDays)

		// Locality bonuses are mutually exclusive: same dormitory wins,
		// same university only applies when the dormitory differs.
		if buyer.DormitoryID != nil {
			switch localityTier(*c, buyer) {
			case tierSameDormitory:
				score += sameDormitoryBonus
			case tierSameUniversity:
				score += sameUniversityBonus
			}
		}

		if buyer.Coords != nil {
			if coords, ok := ParseCoordinates(c.DormitoryLatitude, c.DormitoryLongitude, c.DormitoryAddress); ok {
				distance := DistanceKM(*buyer.Coords, coords)
				c.DistanceKM = &distance
				score += proximityBonus * math.Exp(-distance/proximityDecayKM)
			}
		}

		c.Score = score
	}
}

func localityTier(c domain.ProductCandidate, buyer BuyerLocation) int {
	if buyer.DormitoryID != nil && c.DormitoryID == *buyer.DormitoryID {
		return tierSameDormitory
	}
	if buyer.UniversityID != nil && c.DormitoryUniversityID != nil &&
		*c.DormitoryUniversityID == *buyer.UniversityID {
		return tierSameUniversity
	}
	return tierOther
}

// rankColdStart orders ascending by (locality tier, distance, -createdAt):
// closest and most local first, newest breaking ties. Composite score is
// ignored for buyers without enough behavior to trust it.
func rankColdStart(candidates []domain.ProductCandidate, buyer BuyerLocation) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := localityTier(candidates[i], buyer), localityTier(candidates[j], buyer)
		if ti != tj {
			return ti < tj
		}

		di, dj := sortDistance(candidates[i]), sortDistance(candidates[j])
		if di != dj {
			return di < dj
		}

		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
}

func sortDistance(c domain.ProductCandidate) float64 {
	if c.DistanceKM == nil {
		return unknownDistanceKM
	}
	return *c.DistanceKM
}

// rankWarm orders descending by composite score, newest first on equal
// scores.
func rankWarm(candidates []domain.ProductCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
}
