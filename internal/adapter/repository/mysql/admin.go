package mysql

import (
	"context"
	"strings"
	"time"

	adminDomain "consignado-backend/internal/domain/admin"

	"gorm.io/gorm"
)

type AdminRepository struct{ db *gorm.DB }

func NewAdminRepository(db *gorm.DB) *AdminRepository { return &AdminRepository{db: db} }

func (r *AdminRepository) Create(ctx context.Context, u *adminDomain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*adminDomain.User, error) {
	var out adminDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&out)
	return &out, res.Error
}

func (r *AdminRepository) GetByID(ctx context.Context, id uint64) (*adminDomain.User, error) {
	var out adminDomain.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AdminRepository) TouchLastSignedIn(ctx context.Context, id uint64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&adminDomain.User{}).Where("id = ?", id).Update("last_signed_in", at.UTC()).Error
}
