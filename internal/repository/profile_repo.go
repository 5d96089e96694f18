package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"skillbridge/internal/domain"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	p.Email = normalizeEmail(p.Email)
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// GetRole returns the selected role, "" when none is set.
func (r *ProfileRepository) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Role(), nil
}

func (r *ProfileRepository) SetRole(ctx context.Context, id int64, role domain.Role) error {
	return r.update(ctx, id, map[string]any{"selected_role": string(role)})
}

func (r *ProfileRepository) UpdateDetails(ctx context.Context, id int64, fullName, phone *string) error {
	fields := map[string]any{}
	if fullName != nil {
		fields["full_name"] = *fullName
	}
	if phone != nil {
		fields["phone"] = *phone
	}
	if len(fields) == 0 {
		return nil
	}
	return r.update(ctx, id, fields)
}

func (r *ProfileRepository) SetAvatarURL(ctx context.Context, id int64, url string) error {
	return r.update(ctx, id, map[string]any{"avatar_url": url})
}

func (r *ProfileRepository) update(ctx context.Context, id int64, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
