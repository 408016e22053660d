package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/pkg/enums"
)

// Review belongs to exactly one shop and optionally to a user (nil UserID
// means an anonymous review). The submitter IP is captured for abuse
// tracking and never serialized.
type Review struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShopID          uuid.UUID             `gorm:"column:shop_id;type:uuid;not null;index:idx_reviews_shop_created,priority:1;index:idx_reviews_shop_rating,priority:1" json:"shop_id"`
	UserID          *uuid.UUID            `gorm:"column:user_id;type:uuid" json:"user_id,omitempty"`
	Rating          int                   `gorm:"column:rating;not null;index:idx_reviews_shop_rating,priority:2" json:"rating"`
	ReviewText      string                `gorm:"column:review_text" json:"review_text"`
	InteractionType enums.InteractionType `gorm:"column:interaction_type" json:"interaction_type,omitempty"`
	IsVerified      bool                  `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	IsFlagged       bool                  `gorm:"column:is_flagged;not null;default:false" json:"is_flagged"`
	FlagReason      string                `gorm:"column:flag_reason" json:"flag_reason,omitempty"`
	HelpfulCount    int                   `gorm:"column:helpful_count;not null;default:0" json:"helpful_count"`
	IPAddress       string                `gorm:"column:ip_address" json:"-"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime;index:idx_reviews_shop_created,priority:2" json:"created_at"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// MaxReviewTextLen caps the free-text body of a review.
const MaxReviewTextLen = 1000
