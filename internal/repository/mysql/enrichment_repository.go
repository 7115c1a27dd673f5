package mysql

import (
	"context"
	"fmt"

	"sukiMarket/domain"

	"gorm.io/gorm"
)

// EnrichmentRepository resolves the presentation extras for a final page:
// listing thumbnails and tags. Both tables are optional; a fresh install
// without them serves pages with empty enrichment instead of failing.
type EnrichmentRepository struct {
	DB *gorm.DB
}

func NewEnrichmentRepository(db *gorm.DB) *EnrichmentRepository {
	return &EnrichmentRepository{
		DB: db,
	}
}

// PrimaryImages returns one image per product: the first row ordered by
// is_primary DESC, id ASC.
func (r *EnrichmentRepository) PrimaryImages(ctx context.Context, productIDs []uint64) (map[uint64]domain.ProductImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	images := map[uint64]domain.ProductImage{}
	if len(productIDs) == 0 {
		return images, nil
	}

	var rows []domain.ProductImage
	err := r.DB.WithContext(ctx).Raw(`
		SELECT product_id, image_url, image_thumbnail_url, is_primary
		FROM product_images
		WHERE product_id IN (?)
		ORDER BY is_primary DESC, id ASC`,
		productIDs,
	).Scan(&rows).Error
	if err != nil {
		if degraded := degradeMissingTable(err, "failed to load product images"); degraded != nil {
			return nil, degraded
		}
		return images, nil
	}

	for _, row := range rows {
		if _, ok := images[row.ProductID]; !ok {
			images[row.ProductID] = row
		}
	}

	return images, nil
}

// TagsByProduct returns all tags per product ordered by tag id.
func (r *EnrichmentRepository) TagsByProduct(ctx context.Context, productIDs []uint64) (map[uint64][]domain.ProductTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	tags := map[uint64][]domain.ProductTag{}
	if len(productIDs) == 0 {
		return tags, nil
	}

	var rows []struct {
		ProductID uint64 `gorm:"column:product_id"`
		ID        uint64 `gorm:"column:id"`
		Name      string `gorm:"column:name"`
	}
	err := r.DB.WithContext(ctx).Raw(`
		SELECT pt.product_id, t.id, t.name
		FROM product_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id IN (?)
		ORDER BY t.id ASC`,
		productIDs,
	).Scan(&rows).Error
	if err != nil {
		if degraded := degradeMissingTable(err, "failed to load product tags"); degraded != nil {
			return nil, degraded
		}
		return tags, nil
	}

	for _, row := range rows {
		tags[row.ProductID] = append(tags[row.ProductID], domain.ProductTag{
			ID:   row.ID,
			Name: row.Name,
		})
	}

	return tags, nil
}
