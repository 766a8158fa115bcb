package domain

import "time"

// Order statuses
const (
	OrderCompleted = "completed"
	OrderPending   = "pending"
	OrderCancelled = "cancelled"
)

// Order Model
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                     // Primary key
	UserID      uint      `gorm:"index;not null" json:"user_id"`            // Foreign key to User
	CourseID    uint      `gorm:"not null" json:"course_id"`                // Catalog course id
	CourseTitle string    `gorm:"size:255;not null" json:"course_title"`    // Title snapshot at purchase time
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"` // Price paid
	Status      string    `gorm:"size:20;default:completed" json:"status"`  // pending, completed or cancelled
	CreatedAt   time.Time `json:"created_at"`                               // Timestamp of purchase
}
