package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	settingDomain "consignado-backend/internal/domain/setting"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) *SettingRepository { return &SettingRepository{db: db} }

func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var out settingDomain.Setting
	err := r.db.WithContext(ctx).Where("`key` = ?", strings.TrimSpace(key)).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return out.Value, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string, description *string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("setting key is required")
	}
	row := &settingDomain.Setting{
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	}
	cols := []string{"value", "updated_at"}
	if description != nil {
		cols = append(cols, "description")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(row).Error
}

func (r *SettingRepository) List(ctx context.Context) ([]settingDomain.Setting, error) {
	var out []settingDomain.Setting
	err := r.db.WithContext(ctx).Order("`key` ASC").Find(&out).Error
	return out, err
}
