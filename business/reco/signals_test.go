package reco

import (
	"math"
	"testing"
	"time"

	"sukiMarket/domain"
)

func uintPtr(v uint64) *uint64 {
	return &v
}

func eventAt(id uint64, eventType string, categoryID, sellerID, productID *uint64, occurredAt time.Time) domain.BehavioralEvent {
	return domain.BehavioralEvent{
		ID:         id,
		EventType:  eventType,
		CategoryID: categoryID,
		SellerID:   sellerID,
		ProductID:  productID,
		OccurredAt: occurredAt,
	}
}

func TestEventWeightByType(t *testing.T) {
	cases := []struct {
		eventType string
		want      float64
	}{
		{"favorite", 3.0},
		{"favourite", 3.0},
		{"offer", 4.0},
		{"make_offer", 4.0},
		{"message", 2.0},
		{"chat", 2.0},
		{"purchase", 5.0},
		{"buy", 5.0},
		{"transaction", 5.0},
		{"view", 1.0},
		{"click", 1.0},
		{" VIEW ", 1.0},
		{"something_else", 0.5},
		{"", 0.5},
	}

	for _, tc := range cases {
		if got := eventWeight(tc.eventType); got != tc.want {
			t.Errorf("eventWeight(%q) = %v, want %v", tc.eventType, got, tc.want)
		}
	}
}

func TestRankBoostTiers(t *testing.T) {
	cases := []struct {
		idx  int
		want float64
	}{
		{0, 6.0}, {1, 4.0}, {2, 4.0}, {3, 2.0}, {9, 2.0}, {10, 1.0}, {100, 1.0},
	}
	for _, tc := range cases {
		if got := rankBoost(tc.idx); got != tc.want {
			t.Errorf("rankBoost(%d) = %v, want %v", tc.idx, got, tc.want)
		}
	}
}

func TestTimeDecay(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := timeDecay(now, now); got != 1.0 {
		t.Fatalf("zero age decay = %v, want 1", got)
	}

	// future-dated events clamp to zero age
	if got := timeDecay(now.Add(time.Hour), now); got != 1.0 {
		t.Fatalf("future event decay = %v, want 1", got)
	}

	got := timeDecay(now.AddDate(0, 0, -14), now)
	want := math.Exp(-1)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("14 day decay = %v, want %v", got, want)
	}
}

func TestBuildAffinityProfileAccumulates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// newest first, all occurring now so decay is 1
	events := []domain.BehavioralEvent{
		eventAt(10, "purchase", uintPtr(5), uintPtr(77), uintPtr(100), now), // 5 * 6
		eventAt(9, "view", uintPtr(5), nil, uintPtr(101), now),              // 1 * 4
		eventAt(8, "favorite", uintPtr(7), uintPtr(88), nil, now),           // 3 * 4
	}

	profile := BuildAffinityProfile(events, now)

	if !profile.LowBehavior {
		t.Fatal("3 events should flag low behavior")
	}

	if got, want := profile.CategoryScores[5], 30.0+4.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("category 5 score = %v, want %v", got, want)
	}
	if got, want := profile.CategoryScores[7], 12.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("category 7 score = %v, want %v", got, want)
	}
	if got, want := profile.SellerScores[77], 30.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("seller 77 score = %v, want %v", got, want)
	}

	if len(profile.SeenProductIDs) != 2 {
		t.Fatalf("seen products = %v, want 2 entries", profile.SeenProductIDs)
	}
	if !profile.Seen(100) || !profile.Seen(101) || profile.Seen(999) {
		t.Fatal("seen set mismatch")
	}

	if len(profile.TopCategories) != 2 || profile.TopCategories[0] != 5 {
		t.Fatalf("top categories = %v, want [5 7]", profile.TopCategories)
	}
}

func TestBuildAffinityProfileLowBehaviorBoundary(t *testing.T) {
	now := time.Now()

	events := make([]domain.BehavioralEvent, 0, 5)
	for i := 0; i < 4; i++ {
		events = append(events, eventAt(uint64(10-i), "view", uintPtr(1), nil, nil, now))
	}

	if p := BuildAffinityProfile(events, now); !p.LowBehavior {
		t.Fatal("4 events should flag low behavior")
	}

	events = append(events, eventAt(1, "view", uintPtr(1), nil, nil, now))
	if p := BuildAffinityProfile(events, now); p.LowBehavior {
		t.Fatal("5 events should not flag low behavior")
	}
}

func TestBuildAffinityProfileTopListsStableAndCapped(t *testing.T) {
	now := time.Now()

	// 12 distinct categories, all equal weight; ties keep first-seen order
	events := make([]domain.BehavioralEvent, 0, 12)
	for i := 0; i < 12; i++ {
		events = append(events, eventAt(uint64(100-i), "view", uintPtr(uint64(i+1)), nil, nil, now.Add(-time.Duration(i)*time.Minute)))
	}

	profile := BuildAffinityProfile(events, now)

	if len(profile.TopCategories) != affinityTopN {
		t.Fatalf("top categories capped at %d, got %d", affinityTopN, len(profile.TopCategories))
	}

	// rank boost makes the newest categories heaviest, so the cap drops
	// the oldest two
	if profile.TopCategories[0] != 1 {
		t.Fatalf("heaviest category = %d, want 1", profile.TopCategories[0])
	}
	for _, id := range profile.TopCategories {
		if id == 11 || id == 12 {
			t.Fatalf("category %d should have been dropped by the cap", id)
		}
	}
}

func TestBuildAffinityProfileSeenCap(t *testing.T) {
	now := time.Now()

	events := make([]domain.BehavioralEvent, 0, maxTrackedSeenProducts+100)
	for i := 0; i < maxTrackedSeenProducts+100; i++ {
		pid := uint64(i + 1)
		events = append(events, eventAt(uint64(i+1), "view", nil, nil, &pid, now))
	}

	profile := BuildAffinityProfile(events, now)
	if len(profile.SeenProductIDs) != maxTrackedSeenProducts {
		t.Fatalf("seen list = %d, want cap %d", len(profile.SeenProductIDs), maxTrackedSeenProducts)
	}
}

func TestBuildAffinityProfileSkipsMissingIDs(t *testing.T) {
	now := time.Now()

	events := []domain.BehavioralEvent{
		eventAt(3, "view", nil, nil, nil, now),
		eventAt(2, "view", nil, uintPtr(4), nil, now),
		eventAt(1, "view", uintPtr(9), nil, nil, now),
	}

	profile := BuildAffinityProfile(events, now)
	if len(profile.CategoryScores) != 1 || len(profile.SellerScores) != 1 || len(profile.SeenProductIDs) != 0 {
		t.Fatalf("unexpected accumulation: %+v", profile)
	}
}
