package model

import "time"

type User struct {
	ID               string `gorm:"primaryKey;size:64;not null"` // user_<unixms>_<suffix>
	Email            string `gorm:"size:128;uniqueIndex;not null"`
	Name             string `gorm:"size:64;not null"`
	Points           int    `gorm:"not null;default:0"`
	LastPointsSource string `gorm:"size:32"`
	LastPointsUpdate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Location struct {
	ID       uint    `gorm:"primaryKey"`
	Name     string  `gorm:"size:128;not null"`
	Address  string  `gorm:"size:256;not null"`
	Lat      float64 `gorm:"not null"`
	Lng      float64 `gorm:"not null"`
	Category string  `gorm:"size:32;index;not null"` // plastik, elektronik, organik
}

type Transaction struct {
	TransactionID string `gorm:"primaryKey;size:64;not null"` // WW-<unixms>-<rand>
	OrderID       string `gorm:"size:64;index"`
	UserID        string `gorm:"size:64;index"`
	Amount        int64  `gorm:"not null"`               // whole rupiah
	Status        string `gorm:"size:16;index;not null"` // pending, success, failure
	WasteType     string `gorm:"size:32"`
	Weight        float64
	LocationName  string `gorm:"size:128"`
	PaymentMethod string `gorm:"size:32"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contribution is the user's most recent completed drop-off. One row per
// user: a new submission overwrites the previous one.
type Contribution struct {
	UserID       string  `gorm:"primaryKey;size:64;not null"`
	WasteType    string  `gorm:"size:32;not null"`
	Weight       float64 `gorm:"not null"`
	Points       int     `gorm:"not null"`
	CO2Saved     float64 `gorm:"column:co2_saved;not null"`
	LocationName string  `gorm:"size:128"`
	RecordedAt   time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;uniqueIndex;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
