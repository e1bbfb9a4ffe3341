package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PlaceholderImage = "/placeholder.svg"

type User struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	WalletAddress string        `json:"walletAddress" gorm:"uniqueIndex;not null"`
	Username      *string       `json:"username"`
	Handle        *string       `json:"handle" gorm:"uniqueIndex"` // NULLs do not collide
	Bio           *string       `json:"bio"`
	Avatar        string        `json:"avatar" gorm:"not null"`
	Banner        string        `json:"banner" gorm:"not null"`
	Followers     int           `json:"followers" gorm:"not null"`
	Following     int           `json:"following" gorm:"not null"`
	TokenHolders  int           `json:"tokenHolders" gorm:"not null"`
	IsCreator     bool          `json:"isCreator" gorm:"not null;index"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
	Token         *CreatorToken `json:"token,omitempty" gorm:"foreignKey:UserID"`
	Interests     []Interest    `json:"interests,omitempty" gorm:"many2many:user_interests"`
}

// NewWalletUser returns the row inserted the first time an address is seen.
func NewWalletUser(walletAddress string) *User {
	return &User{
		ID:            uuid.New(),
		WalletAddress: walletAddress,
		Avatar:        PlaceholderImage,
		Banner:        PlaceholderImage,
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Str dereferences an optional profile field.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
