package domain

import "time"

// Question statuses
const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"
)

// Question Model
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"`             // Foreign key to User
	UserName  string    `gorm:"->;-:migration" json:"user_name,omitempty"` // Author name, joined at read time
	Title     string    `gorm:"size:255;not null" json:"title"`            // Question title
	Content   string    `gorm:"type:text;not null" json:"content"`         // Question body
	ImagePath string    `gorm:"size:255" json:"image_path,omitempty"`      // Optional attachment path, recorded verbatim
	Status    string    `gorm:"size:20;default:pending" json:"status"`     // pending or answered
	CreatedAt time.Time `json:"created_at"`                                // Timestamp of creation
	Replies   []Reply   `gorm:"-" json:"replies,omitempty"`                // Replies, loaded on detail reads
}

// Reply Model
type Reply struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	QuestionID uint      `gorm:"index;not null" json:"question_id"`         // Foreign key to Question
	UserID     uint      `gorm:"not null" json:"user_id"`                   // Foreign key to User
	UserName   string    `gorm:"->;-:migration" json:"user_name,omitempty"` // Author name, joined at read time
	Content    string    `gorm:"type:text;not null" json:"content"`         // Reply body
	CreatedAt  time.Time `json:"created_at"`                                // Timestamp of creation
}
