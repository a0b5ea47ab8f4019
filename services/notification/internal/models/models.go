package models

import "time"

type Notification struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ToUserID    uint      `gorm:"index;not null"           json:"to_user_id"`
	ToUserEmail string    `gorm:"not null"                 json:"to_user_email"`
	Sender      string    `gorm:"not null"                 json:"sender"`
	Message     string    `gorm:"not null"                 json:"message"`
	SentAt      time.Time `gorm:"not null"                 json:"sent_at"`
}
