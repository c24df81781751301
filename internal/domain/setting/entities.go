package setting

import "time"

// Keys read by the document storage layer.
const (
	KeyStorageProvider    = "storage_provider"
	KeyGDriveClientID     = "gdrive_client_id"
	KeyGDriveClientSecret = "gdrive_client_secret"
	KeyGDriveRefreshToken = "gdrive_refresh_token"
	KeyGDriveFolderID     = "gdrive_folder_id"
	KeyS3AccessKeyID      = "s3_access_key_id"
	KeyS3SecretAccessKey  = "s3_secret_access_key"
	KeyS3Bucket           = "s3_bucket"
	KeyS3Region           = "s3_region"
	KeyS3Endpoint         = "s3_endpoint"
)

type Setting struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	Key         string    `gorm:"column:key;size:100;not null;uniqueIndex" json:"key"`
	Value       string    `gorm:"column:value;type:text;not null" json:"value"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }
