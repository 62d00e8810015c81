package models

import "time"

// LabelDocument describes a generated label PDF on disk.
type LabelDocument struct {
	ID         int64     `json:"id,omitempty"`
	FileName   string    `json:"fileName"`
	LabelSize  string    `json:"labelSize"`
	LabelCount int       `json:"labelCount"`
	OrderCount int       `json:"orderCount"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}
