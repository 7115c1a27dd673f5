package domain

import "time"

// BehavioralEvent is one row of the buyer's interaction history. The table
// is written by the marketplace backend; this service only reads it, newest
// first, windowed to a lookback period.
type BehavioralEvent struct {
	ID         uint64    `gorm:"column:id;primaryKey" json:"id"`
	EventType  string    `gorm:"column:event_type" json:"event_type"`
	ProductID  *uint64   `gorm:"column:product_id" json:"product_id"`
	CategoryID *uint64   `gorm:"column:category_id" json:"category_id"`
	SellerID   *uint64   `gorm:"column:seller_id" json:"seller_id"`
	OccurredAt time.Time `gorm:"column:occurred_at" json:"occurred_at"`
}

func (BehavioralEvent) TableName() string {
	return "behavioral_events"
}
