package domain

import "time"

// DefaultBalance is the credit granted to every newly provisioned account.
const DefaultBalance = 1000.00

// Account Model
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                              // Primary key
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`               // Foreign key to User, one account per user
	Balance   float64   `gorm:"type:decimal(10,2);default:1000.00" json:"balance"` // Non-negative balance
	CreatedAt time.Time `json:"created_at"`                                        // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                                        // Timestamp of last balance change
}
