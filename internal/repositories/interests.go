package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/rohits-web03/vybr8r/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultInterests are inserted on startup when the table is empty.
var DefaultInterests = []models.Interest{
	{Name: "Music", Category: "Entertainment"},
	{Name: "Art", Category: "Creative"},
	{Name: "Gaming", Category: "Entertainment"},
	{Name: "Photography", Category: "Creative"},
	{Name: "DeFi", Category: "Crypto"},
	{Name: "NFTs", Category: "Crypto"},
	{Name: "Fitness", Category: "Lifestyle"},
	{Name: "Fashion", Category: "Lifestyle"},
	{Name: "Tech", Category: "General"},
	{Name: "Education", Category: "General"},
}

type InterestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

func (r *InterestRepository) List(ctx context.Context) ([]models.Interest, error) {
	var interests []models.Interest
	if err := r.db.WithContext(ctx).Order("name").Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *InterestRepository) ForUser(ctx context.Context, userID uuid.UUID) ([]models.Interest, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Interests").Where("id = ?", userID).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return user.Interests, nil
}

// SeedDefaults inserts DefaultInterests if none exist. Returns how many rows were added.
func (r *InterestRepository) SeedDefaults(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Interest{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	seed := make([]models.Interest, len(DefaultInterests))
	copy(seed, DefaultInterests)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&seed)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
