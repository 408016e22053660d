package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/eastlify/eastlify-backend/pkg/types"
)

// Shop represents a registered merchant listing.
//
// Rating and TotalReviews are owned by the rating aggregator; TotalCalls,
// Sales and Orders are owned by the activity ledger. No other writer touches
// these columns, which keeps concurrent counter updates free of lost-update
// races without cross-document locking.
type Shop struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID       uuid.UUID          `gorm:"column:owner;type:uuid;not null;uniqueIndex" json:"owner"`
	Name          string             `gorm:"column:name;not null" json:"name"`
	Description   string             `gorm:"column:description" json:"description"`
	Categories    pq.StringArray     `gorm:"column:categories;type:text[]" json:"categories"`
	Street        string             `gorm:"column:street;not null" json:"street"`
	BuildingFloor string             `gorm:"column:building_floor" json:"building_floor"`
	Phone         string             `gorm:"column:phone;not null" json:"phone"`
	Email         string             `gorm:"column:email" json:"email"`
	WhatsApp      string             `gorm:"column:whatsapp" json:"whatsapp"`
	ProfileImage  string             `gorm:"column:profile_image" json:"profile_image"`
	CoverImage    string             `gorm:"column:cover_image" json:"cover_image"`
	WorkingHours  types.WorkingHours `gorm:"column:working_hours;type:jsonb" json:"working_hours"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsVerified    bool               `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	Rating        float64            `gorm:"column:rating;not null;default:0" json:"rating"`
	TotalReviews  int                `gorm:"column:total_reviews;not null;default:0" json:"total_reviews"`
	TotalCalls    int                `gorm:"column:total_calls;not null;default:0" json:"total_calls"`
	Sales         decimal.Decimal    `gorm:"column:sales;type:numeric(14,2);not null;default:0" json:"sales"`
	Orders        int                `gorm:"column:orders;not null;default:0" json:"orders"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
