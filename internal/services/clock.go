package services

import (
	"time"

	"github.com/Filichkin/SA-RAG/domain"
)

// SystemClock implements domain.Clock with wall-clock time
type SystemClock struct{}

// NewSystemClock creates the production clock
func NewSystemClock() domain.Clock {
	return SystemClock{}
}

// Now implements domain.Clock
func (SystemClock) Now() time.Time {
	return time.Now()
}
