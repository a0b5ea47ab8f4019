package models

import "time"

type FraudCheckHistory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null"           json:"user_id"`
	IsFraudster bool      `gorm:"not null"                 json:"is_fraudster"`
	CreatedAt   time.Time `gorm:"not null"                 json:"created_at"`
}
