package domain

import "time"

type ShortURL struct {
	ID          int64      `json:"id"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	VisitCount  int64      `json:"visit_count"`
	LastVisited *time.Time `json:"last_visited"`
	OwnerID     int64      `json:"owner_id"`
}

// Expired reports whether the link's expiry has passed at the given moment.
func (u *ShortURL) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && !u.ExpiresAt.After(now)
}

type CreateURLRequest struct {
	OriginalURL string `json:"url" validate:"required,url"`
	Title       string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	CustomAlias string `json:"custom_alias,omitempty" validate:"omitempty,min=4,max=20,alias"`
	// ExpiresInDays of nil means the configured default expiry; zero means
	// the link expires immediately.
	ExpiresInDays *int `json:"expires_in_days,omitempty" validate:"omitempty,gte=0,lte=3650"`
}
