package model

import "time"

// Session - сессия пользователя. В хранилище лежит только хэш refresh токена
type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}
