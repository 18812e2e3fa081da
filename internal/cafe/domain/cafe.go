package domain

import "time"

// Cafe is the tenant entity: one owner, one location, one review stream.
type Cafe struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	OwnerID   string    `json:"owner_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Timezone  string    `json:"timezone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cafe) TableName() string {
	return "cafes"
}

// User is a café owner account. Authentication lives outside this service;
// the record only backs email resolution for digests.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// NotificationPreference controls whether a user receives the weekly digest.
type NotificationPreference struct {
	UserID         string     `json:"user_id" gorm:"primaryKey"`
	DigestEnabled  bool       `json:"digest_enabled" gorm:"default:true"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}
