package domain

import "time"

// Event channels consumed by downstream subscribers.
const (
	ChannelURLCreated            = "url_created"
	ChannelVisitThresholdReached = "visit_threshold_reached"
	ChannelURLExpiringSoon       = "url_expiring_soon"
)

// Event is one of the closed set of notifications the service publishes.
type Event interface {
	Channel() string
}

type URLCreatedEvent struct {
	URLID       int64      `json:"url_id"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	OwnerID     int64      `json:"owner_id"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (URLCreatedEvent) Channel() string { return ChannelURLCreated }

type VisitThresholdReachedEvent struct {
	URLID      int64  `json:"url_id"`
	ShortCode  string `json:"short_code"`
	VisitCount int64  `json:"visit_count"`
	OwnerID    int64  `json:"owner_id"`
}

func (VisitThresholdReachedEvent) Channel() string { return ChannelVisitThresholdReached }

type URLExpiringSoonEvent struct {
	URLID         int64     `json:"url_id"`
	ShortCode     string    `json:"short_code"`
	ExpiresAt     time.Time `json:"expires_at"`
	DaysRemaining int       `json:"days_remaining"`
	OwnerID       int64     `json:"owner_id"`
}

func (URLExpiringSoonEvent) Channel() string { return ChannelURLExpiringSoon }
