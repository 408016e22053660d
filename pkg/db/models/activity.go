package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eastlify/eastlify-backend/pkg/enums"
)

// Activity is an append-only ledger entry for a call, WhatsApp tap, or
// recorded sale against a shop. Rows are never updated or deleted.
type Activity struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShopID    uuid.UUID          `gorm:"column:shop_id;type:uuid;not null;index:idx_activities_shop_created,priority:1" json:"shop_id"`
	Type      enums.ActivityType `gorm:"column:type;type:activity_type;not null" json:"type"`
	Detail    string             `gorm:"column:detail" json:"detail,omitempty"`
	Item      string             `gorm:"column:item" json:"item,omitempty"`
	Amount    decimal.Decimal    `gorm:"column:amount;type:numeric(14,2);not null;default:0" json:"amount"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime;index:idx_activities_shop_created,priority:2" json:"created_at"`
}
