package settings

import (
	"time"

	"consignado-backend/internal/storage"
)

type SettingDTO struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description,omitempty"`
	Masked      bool      `json:"masked,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type SetInput struct {
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

type TestResult struct {
	Provider storage.Provider `json:"provider"`
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
}
