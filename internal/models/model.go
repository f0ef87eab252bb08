package models

import (
	"time"
)

// Model is the base model for all persisted entities.
//
// IDs are server-assigned, strictly positive integers. Entities created
// client-side carry a negative placeholder ID until the server confirms
// them, so a negative ID never reaches this package through gorm.
type Model struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	Timestamps
}

// Timestamps contains the timestamps gorm manages automatically.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt"` // Last time the resource was updated
}
