package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/pkg/enums"
)

// User represents the canonical identity entity. A user holds at most one
// shop; the link is mirrored on both sides and the shops.owner unique index
// is the hard guarantee.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	Phone        string         `gorm:"column:phone" json:"phone"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null;default:'customer'" json:"role"`
	ShopID       *uuid.UUID     `gorm:"column:shop_id;type:uuid" json:"shop_id,omitempty"`
	IsVerified   bool           `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
