package mysql

import (
	"context"
	"fmt"
	"time"

	"sukiMarket/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		DB: db,
	}
}

// RecentByBuyer returns the buyer's most recent behavioral events inside the
// lookback window, newest first. A missing events table degrades to an empty
// result so a fresh install still serves cold-start recommendations.
func (r *EventRepository) RecentByBuyer(ctx context.Context, buyerID uint64, since time.Time, limit int) ([]domain.BehavioralEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.BehavioralEvent

	err := r.DB.WithContext(ctx).Raw(`
		SELECT id, event_type, product_id, category_id, seller_id, occurred_at
		FROM behavioral_events
		WHERE user_id = ? AND occurred_at >= ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?`,
		buyerID, since, limit,
	).Scan(&events).Error
	if err != nil {
		if degraded := degradeMissingTable(err, "failed to load behavioral events"); degraded != nil {
			return nil, degraded
		}
		return []domain.BehavioralEvent{}, nil
	}

	return events, nil
}
