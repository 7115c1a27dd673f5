package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sukiMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

const candidateSelect = `
	SELECT
		p.id, p.seller_id, p.dormitory_id, p.category_id, p.condition_level_id,
		p.title, p.price, p.status, p.created_at,
		d.dormitory_name AS dormitory_name,
		d.latitude AS dormitory_latitude,
		d.longitude AS dormitory_longitude,
		d.address AS dormitory_address,
		d.university_id AS dormitory_university_id,
		u.username AS seller_username,
		CASE WHEN pl.id IS NULL THEN 0 ELSE 1 END AS is_promoted
	FROM products p
	JOIN dormitories d ON d.id = p.dormitory_id
	JOIN users u ON u.id = p.seller_id
	LEFT JOIN promoted_listings pl ON pl.product_id = p.id AND pl.promoted_until > NOW()
	WHERE p.status = 'available' AND p.deleted_at IS NULL`

// FindCandidates loads available listings matching the filter, newest first.
// With an affinity signal present, candidates must match a top category, a
// top seller, the buyer's dormitory or university, or be actively promoted.
// A missing table here is a deployment problem and surfaces as such.
func (r *ProductRepository) FindCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.ProductCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := candidateSelect
	args := []interface{}{}

	if len(filter.ExcludeProductIDs) > 0 {
		query += " AND p.id NOT IN (?)"
		args = append(args, filter.ExcludeProductIDs)
	}

	if filter.HasAffinitySignal() {
		orParts := []string{}
		if len(filter.TopCategories) > 0 {
			orParts = append(orParts, "p.category_id IN (?)")
			args = append(args, filter.TopCategories)
		}
		if len(filter.TopSellers) > 0 {
			orParts = append(orParts, "p.seller_id IN (?)")
			args = append(args, filter.TopSellers)
		}
		if filter.BuyerDormitoryID != nil {
			orParts = append(orParts, "p.dormitory_id = ?")
			args = append(args, *filter.BuyerDormitoryID)
		}
		if filter.BuyerUniversityID != nil {
			orParts = append(orParts, "d.university_id = ?")
			args = append(args, *filter.BuyerUniversityID)
		}
		orParts = append(orParts, "pl.id IS NOT NULL")

		query += " AND (" + strings.Join(orParts, " OR ") + ")"
	}

	query += " ORDER BY p.created_at DESC LIMIT ?"
	args = append(args, filter.Limit)

	var candidates []domain.ProductCandidate
	if err := r.DB.WithContext(ctx).Raw(query, args...).Scan(&candidates).Error; err != nil {
		if classified := classifyError(err); classified != err {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to load product candidates: %w", err)
	}

	return candidates, nil
}

// LastListed returns the id and creation time of the newest available
// listing. Used as a rotation marker for the derived exploration seed, so a
// missing products table degrades to zero rather than failing.
func (r *ProductRepository) LastListed(ctx context.Context) (uint64, *time.Time, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, fmt.Errorf("context error: %w", err)
	}

	var row struct {
		LastProductID *uint64    `gorm:"column:last_product_id"`
		LastCreatedAt *time.Time `gorm:"column:last_created_at"`
	}

	err := r.DB.WithContext(ctx).Raw(`
		SELECT MAX(id) AS last_product_id, MAX(created_at) AS last_created_at
		FROM products
		WHERE status = 'available' AND deleted_at IS NULL`,
	).Scan(&row).Error
	if err != nil {
		if degraded := degradeMissingTable(err, "failed to load last listing marker"); degraded != nil {
			return 0, nil, degraded
		}
		return 0, nil, nil
	}

	var lastID uint64
	if row.LastProductID != nil {
		lastID = *row.LastProductID
	}

	return lastID, row.LastCreatedAt, nil
}
