package models

import "time"

type Session struct {
	Token     string    `json:"token"`
	DriverID  int64     `json:"driver_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
