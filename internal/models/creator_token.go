package models

import (
	"time"

	"github.com/google/uuid"
)

// CreatorToken is the fungible token a creator issues. Rows are managed by the
// token service; identity code only reads the link.
type CreatorToken struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	TokenSymbol  string    `json:"tokenSymbol" gorm:"uniqueIndex;not null"`
	TokenName    string    `json:"tokenName" gorm:"not null"`
	CurrentPrice float64   `json:"currentPrice" gorm:"not null"`
	TotalSupply  int64     `json:"totalSupply" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
