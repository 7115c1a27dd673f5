package mysql

import (
	"context"
	"fmt"

	"sukiMarket/domain"

	"gorm.io/gorm"
)

type DormitoryRepository struct {
	DB *gorm.DB
}

func NewDormitoryRepository(db *gorm.DB) *DormitoryRepository {
	return &DormitoryRepository{
		DB: db,
	}
}

// FindByID returns the dormitory or nil when it does not exist.
func (r *DormitoryRepository) FindByID(ctx context.Context, id uint64) (*domain.Dormitory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var dorm domain.Dormitory

	result := r.DB.WithContext(ctx).Raw(`
		SELECT id, dormitory_name, domain, latitude, longitude, address, is_active, university_id
		FROM dormitories
		WHERE id = ?
		LIMIT 1`,
		id,
	).Scan(&dorm)
	if result.Error != nil {
		if classified := classifyError(result.Error); classified != result.Error {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to find dormitory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &dorm, nil
}
