package factor

import "time"

type FactorDTO struct {
	ID        uint64    `json:"id"`
	Term      int       `json:"term"`
	Day       int       `json:"day"`
	Factor    string    `json:"factor"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpsertInput struct {
	Term   int    `json:"term" validate:"required,gt=0"`
	Day    int    `json:"day" validate:"required,min=1,max=31"`
	Factor string `json:"factor" validate:"required,posdecimal"`
}

type ImportInput struct {
	CSVContent string `json:"csv_content" validate:"required"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}

type DeleteManyInput struct {
	IDs []uint64 `json:"ids"`
}

type DeleteManyResult struct {
	Deleted int64 `json:"deleted"`
}
