package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rohits-web03/vybr8r/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileUpdate carries the onboarding fields. Nil pointers leave the column untouched.
type ProfileUpdate struct {
	Username  *string
	Handle    *string
	Bio       *string
	Avatar    *string
	Banner    *string
	Interests []string
}

// UserRepository is the only writer of user rows.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Token").Where("id = ?", id).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Token").Where("handle = ?", handle).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a user. A clash on wallet_address or handle comes back as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.Returning{}).Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// UpdateProfile writes the profile fields and connects the named interests in
// one transaction, then returns the fresh row.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*models.User, error) {
	updates := map[string]any{}
	if upd.Username != nil {
		updates["username"] = *upd.Username
	}
	if upd.Handle != nil {
		updates["handle"] = *upd.Handle
	}
	if upd.Bio != nil {
		updates["bio"] = *upd.Bio
	}
	if upd.Avatar != nil {
		updates["avatar"] = *upd.Avatar
	}
	if upd.Banner != nil {
		updates["banner"] = *upd.Banner
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{ID: id}
		if len(updates) > 0 {
			res := tx.Model(&user).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		if len(upd.Interests) > 0 {
			var interests []models.Interest
			if err := tx.Where("name IN ?", upd.Interests).Find(&interests).Error; err != nil {
				return err
			}
			if len(interests) > 0 {
				if err := tx.Model(&user).Association("Interests").Append(&interests); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, id)
}

// ListCreators returns up to limit creators, most followed first.
func (r *UserRepository) ListCreators(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Token").
		Where("is_creator = ?", true).
		Order("followers DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
