// Package message models the lightweight per-booking message thread.
package message

import (
	"context"
	"errors"
	"time"
)

var ErrScheduleRequired = errors.New("message: schedule id is required")

// Kind distinguishes staff chatter from system-generated notes.
type Kind string

const (
	KindUser   Kind = "user"
	KindSystem Kind = "system"
)

// Message is one entry in a booking's thread.
type Message struct {
	ID         string    `json:"id"`
	ScheduleID string    `json:"scheduleId"`
	Username   string    `json:"username"`
	Text       string    `json:"text"`
	Kind       Kind      `json:"type"`
	PostedAt   time.Time `json:"timestamp"`
}

// Repository stores threads under their booking document. ForSchedule
// returns messages ordered oldest first; Append stamps the server time.
type Repository interface {
	ForSchedule(ctx context.Context, scheduleID string) ([]Message, error)
	Append(ctx context.Context, msg Message) (string, error)
}
