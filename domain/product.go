package domain

import "time"

// ProductCandidate is the per-request projection of an available listing
// joined with its dormitory, seller, and active-promotion flag. It exists
// only for the lifetime of one recommendation request; the pipeline attaches
// a computed score and distance, nothing else is mutated.
type ProductCandidate struct {
	ID               uint64    `gorm:"column:id" json:"id"`
	SellerID         uint64    `gorm:"column:seller_id" json:"seller_id"`
	DormitoryID      uint64    `gorm:"column:dormitory_id" json:"dormitory_id"`
	CategoryID       *uint64   `gorm:"column:category_id" json:"category_id"`
	ConditionLevelID *uint64   `gorm:"column:condition_level_id" json:"condition_level_id"`
	Title            string    `gorm:"column:title" json:"title"`
	Price            float64   `gorm:"column:price" json:"price"`
	Status           string    `gorm:"column:status" json:"status"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	IsPromoted       bool      `gorm:"column:is_promoted" json:"is_promoted"`

	DormitoryName         string   `gorm:"column:dormitory_name" json:"dormitory_name"`
	DormitoryLatitude     *float64 `gorm:"column:dormitory_latitude" json:"dormitory_latitude"`
	DormitoryLongitude    *float64 `gorm:"column:dormitory_longitude" json:"dormitory_longitude"`
	DormitoryAddress      string   `gorm:"column:dormitory_address" json:"dormitory_address"`
	DormitoryUniversityID *uint64  `gorm:"column:dormitory_university_id" json:"dormitory_university_id"`

	SellerUsername string `gorm:"column:seller_username" json:"seller_username"`

	// Attached by the ranking pipeline.
	Score      float64  `gorm:"-" json:"score"`
	DistanceKM *float64 `gorm:"-" json:"distance_km"`
}

// CandidateFilter narrows the candidate query. When no affinity or locality
// signal is present only the seen-item exclusion applies.
type CandidateFilter struct {
	ExcludeProductIDs []uint64
	TopCategories     []uint64
	TopSellers        []uint64
	BuyerDormitoryID  *uint64
	BuyerUniversityID *uint64
	Limit             int
}

// HasAffinitySignal reports whether any affinity or locality term exists;
// promoted listings only join the OR-filter when one does.
func (f CandidateFilter) HasAffinitySignal() bool {
	return len(f.TopCategories) > 0 ||
		len(f.TopSellers) > 0 ||
		f.BuyerDormitoryID != nil ||
		f.BuyerUniversityID != nil
}

// ProductImage is one row of the product_images table; the first row per
// product ordered by is_primary DESC, id ASC is the listing thumbnail.
type ProductImage struct {
	ProductID         uint64  `gorm:"column:product_id" json:"product_id"`
	ImageURL          string  `gorm:"column:image_url" json:"image_url"`
	ImageThumbnailURL *string `gorm:"column:image_thumbnail_url" json:"image_thumbnail_url"`
	IsPrimary         bool    `gorm:"column:is_primary" json:"is_primary"`
}

type ProductTag struct {
	ID   uint64 `gorm:"column:id" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}
