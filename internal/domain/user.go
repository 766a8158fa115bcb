package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Name      string    `gorm:"size:100;not null" json:"name"`              // Display name
	Phone     string    `gorm:"size:20;not null" json:"phone"`              // Phone number
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"` // Unique email, exact match
	Password  string    `gorm:"size:255;not null" json:"-"`                 // Hashed password, never serialized
	CreatedAt time.Time `json:"created_at"`                                 // Registration timestamp
}
