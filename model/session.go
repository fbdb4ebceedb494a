package model

import "time"

// AccessSession is a single-purpose credential binding a token to one
// catalog entry for a bounded time. Sessions are created by a draw and
// destroyed on expiry; they are never mutated or renewed.
type AccessSession struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"session"`
	EntryID   string    `gorm:"type:char(36);index" json:"entryId"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}

// TableName overrides the GORM default pluralization.
func (AccessSession) TableName() string {
	return "access_sessions"
}

// ExpiredAt reports whether the session is invalid at the given instant.
// A session is valid iff now < ExpiresAt.
func (s *AccessSession) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
