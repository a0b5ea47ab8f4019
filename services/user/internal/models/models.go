package models

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string  `gorm:"not null"                 json:"first_name"`
	LastName     string  `gorm:"not null"                 json:"last_name"`
	Email        string  `gorm:"unique;not null"          json:"email"`
	Username     string  `gorm:"unique;not null"          json:"username"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	Role         string  `gorm:"not null"                 json:"role"`
	Tokens       []Token `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

const TokenTypeBearer = "BEARER"

// Token is the ledger record of an issued access token. Records are only
// flipped to expired/revoked, never deleted, except when their user goes.
type Token struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	TokenType string `gorm:"not null"        json:"token_type"`
	Expired   bool   `gorm:"default:false"   json:"expired"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
}
