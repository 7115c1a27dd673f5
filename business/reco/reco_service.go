package reco

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sukiMarket/domain"
	"sukiMarket/pkg/logger"
)

const (
	maxEventLookup = 500
	buyerRoleName  = "user"

	DefaultPageSize     = 10
	DefaultRandomCount  = 3
	DefaultLookbackDays = 30
)

// ---- Repository interfaces ----

type IdentityRepository interface {
	CurrentUser(ctx context.Context, authorization string) (domain.IdentityUser, error)
}

type EventRepository interface {
	RecentByBuyer(ctx context.Context, buyerID uint64, since time.Time, limit int) ([]domain.BehavioralEvent, error)
}

type ProductRepository interface {
	FindCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.ProductCandidate, error)
	LastListed(ctx context.Context) (uint64, *time.Time, error)
}

type DormitoryRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Dormitory, error)
}

type EnrichmentRepository interface {
	PrimaryImages(ctx context.Context, productIDs []uint64) (map[uint64]domain.ProductImage, error)
	TagsByProduct(ctx context.Context, productIDs []uint64) (map[uint64][]domain.ProductTag, error)
}

// ---- Usecase / Service ----

// RecoService runs the per-request ranking pipeline: identity lookup →
// signal aggregation → candidate sourcing → scoring → pagination mix →
// enrichment. All state is request-local; concurrent requests are
// independent.
type RecoService struct {
	identityRepo   IdentityRepository
	eventRepo      EventRepository
	productRepo    ProductRepository
	dormitoryRepo  DormitoryRepository
	enrichmentRepo EnrichmentRepository

	now func() time.Time
}

func NewRecoService(
	identityRepo IdentityRepository,
	eventRepo EventRepository,
	productRepo ProductRepository,
	dormitoryRepo DormitoryRepository,
	enrichmentRepo EnrichmentRepository,
) *RecoService {
	return &RecoService{
		identityRepo:   identityRepo,
		eventRepo:      eventRepo,
		productRepo:    productRepo,
		dormitoryRepo:  dormitoryRepo,
		enrichmentRepo: enrichmentRepo,
		now:            time.Now,
	}
}

// RecommendProducts builds one ranked page for the buyer behind the bearer
// credential.
func (s *RecoService) RecommendProducts(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationPage{}, fmt.Errorf("context error: %w", err)
	}

	if req.Authorization == "" {
		return domain.RecommendationPage{}, domain.ErrMissingAuthorization
	}

	if req.RandomCount > req.PageSize {
		req.RandomCount = req.PageSize
	}

	user, err := s.identityRepo.CurrentUser(ctx, req.Authorization)
	if err != nil {
		return domain.RecommendationPage{}, err
	}
	if strings.ToLower(user.Role) != buyerRoleName {
		return domain.RecommendationPage{}, domain.ErrForbiddenRole
	}

	now := s.now()

	var buyerDorm *domain.Dormitory
	if user.DormitoryID != nil {
		buyerDorm, err = s.dormitoryRepo.FindByID(ctx, *user.DormitoryID)
		if err != nil {
			return domain.RecommendationPage{}, err
		}
	}
	buyer := BuyerLocationFromDormitory(buyerDorm)

	since := now.AddDate(0, 0, -req.LookbackDays)
	events, err := s.eventRepo.RecentByBuyer(ctx, user.ID, since, maxEventLookup)
	if err != nil {
		return domain.RecommendationPage{}, err
	}

	profile := BuildAffinityProfile(events, now)

	var lastEventID uint64
	var lastEventAt *time.Time
	if len(events) > 0 {
		lastEventID = events[0].ID
		occurredAt := events[0].OccurredAt
		lastEventAt = &occurredAt
	}

	lastProductID, lastProductAt, err := s.productRepo.LastListed(ctx)
	if err != nil {
		return domain.RecommendationPage{}, err
	}

	candidates, err := s.sourceCandidates(ctx, profile, buyer)
	if err != nil {
		return domain.RecommendationPage{}, err
	}

	ranked := Rank(candidates, profile, buyer, now)

	policy := "warm"
	if profile.LowBehavior {
		policy = "cold_start"
	}
	RecommendationPolicyTotal.WithLabelValues(policy).Inc()

	seed := req.Seed
	var seedValue int64
	if seed != nil {
		seedValue = *seed
	} else {
		seedValue = DeriveSeed(user.ID, req.Page, lastEventID, lastProductID)
	}

	pageItems := MixPage(ranked, req.Page, req.PageSize, req.RandomCount, seedValue)

	products, err := s.enrich(ctx, pageItems)
	if err != nil {
		return domain.RecommendationPage{}, err
	}

	logger.Debug("recommendation_page",
		"trace_id", TraceIDFromContext(ctx),
		"buyer_id", user.ID,
		"policy", policy,
		"pool_size", len(ranked),
		"page_items", len(products),
	)

	return domain.RecommendationPage{
		Message:       "Recommended products retrieved successfully",
		Page:          req.Page,
		PageSize:      req.PageSize,
		RandomCount:   req.RandomCount,
		LastEventID:   lastEventID,
		LastEventAt:   lastEventAt,
		LastProductID: lastProductID,
		LastProductAt: lastProductAt,
		Products:      products,
	}, nil
}

// enrich attaches thumbnail and tags per candidate and shapes the payload.
func (s *RecoService) enrich(ctx context.Context, items []domain.ProductCandidate) ([]domain.RecommendedProduct, error) {
	ids := make([]uint64, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}

	images, err := s.enrichmentRepo.PrimaryImages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}

	tags, err := s.enrichmentRepo.TagsByProduct(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	products := make([]domain.RecommendedProduct, 0, len(items))
	for _, c := range items {
		var thumbnail *string
		if img, ok := images[c.ID]; ok {
			thumbnail = img.ImageThumbnailURL
		}

		productTags := tags[c.ID]
		if productTags == nil {
			productTags = []domain.ProductTag{}
		}

		products = append(products, domain.RecommendedProduct{
			Title:            c.Title,
			Price:            c.Price,
			Status:           c.Status,
			CreatedAt:        c.CreatedAt,
			CategoryID:       c.CategoryID,
			ConditionLevelID: c.ConditionLevelID,
			IsPromoted:       c.IsPromoted,
			Dormitory: domain.DormitorySummary{
				ID:            c.DormitoryID,
				DormitoryName: c.DormitoryName,
				UniversityID:  c.DormitoryUniversityID,
			},
			ImageThumbnailURL: thumbnail,
			Tags:              productTags,
			DistanceKM:        c.DistanceKM,
		})
	}

	return products, nil
}

// Greet resolves the caller's display name through the identity service.
// Used by the connectivity-check endpoint.
func (s *RecoService) Greet(ctx context.Context, authorization string) (string, error) {
	if authorization == "" {
		return "", domain.ErrMissingAuthorization
	}

	user, err := s.identityRepo.CurrentUser(ctx, authorization)
	if err != nil {
		return "", err
	}

	name := user.Username
	if name == "" {
		name = user.FullName
	}
	if name == "" {
		name = user.Email
	}
	if name == "" {
		name = "user"
	}

	return "hi " + name, nil
}
