package domain

import "time"

// RecommendationRequest carries the validated request parameters into the
// ranking pipeline. Authorization is the caller's bearer header verbatim.
type RecommendationRequest struct {
	Authorization string
	Page          int
	PageSize      int
	RandomCount   int
	LookbackDays  int
	Seed          *int64
}

type RecommendationPage struct {
	Message       string               `json:"message"`
	Page          int                  `json:"page"`
	PageSize      int                  `json:"page_size"`
	RandomCount   int                  `json:"random_count"`
	LastEventID   uint64               `json:"last_event_id"`
	LastEventAt   *time.Time           `json:"last_event_at"`
	LastProductID uint64               `json:"last_product_id"`
	LastProductAt *time.Time           `json:"last_product_at"`
	Products      []RecommendedProduct `json:"products"`
}

type RecommendedProduct struct {
	Title             string           `json:"title"`
	Price             float64          `json:"price"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	CategoryID        *uint64          `json:"category_id"`
	ConditionLevelID  *uint64          `json:"condition_level_id"`
	IsPromoted        bool             `json:"is_promoted"`
	Dormitory         DormitorySummary `json:"dormitory"`
	ImageThumbnailURL *string          `json:"image_thumbnail_url"`
	Tags              []ProductTag     `json:"tags"`
	DistanceKM        *float64         `json:"distance_km"`
}

type DormitorySummary struct {
	ID            uint64  `json:"id"`
	DormitoryName string  `json:"dormitory_name"`
	UniversityID  *uint64 `json:"university_id"`
}
