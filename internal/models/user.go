package models

import "time"

// User represents a registered account. The email doubles as the login
// identifier and the stored password is always the SHA-256 digest of the
// plaintext, never the plaintext itself.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(120);not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:char(64);not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}
