package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/config"
	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/internal/metrics"
	redisrepo "github.com/Javets70/url-shortner-backend/internal/repository/redis"
	"github.com/Javets70/url-shortner-backend/pkg/generator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type URLRepository interface {
	Create(ctx context.Context, url *domain.ShortURL) error
	GetByCode(ctx context.Context, shortCode string) (*domain.ShortURL, error)
	CodeExists(ctx context.Context, shortCode string) (bool, error)
	GetByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.ShortURL, error)
	Deactivate(ctx context.Context, id, ownerID int64) (string, error)
}

type URLCache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) bool
}

type URLService struct {
	urlRepo   URLRepository
	cache     URLCache
	publisher EventPublisher
	cfg       config.ShortenerConfig
}

func NewURLService(urlRepo URLRepository, cache URLCache, publisher EventPublisher, cfg config.ShortenerConfig) *URLService {
	return &URLService{
		urlRepo:   urlRepo,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
	}
}

// CreateShortURL generates a unique code, persists the link and announces it
// on the url_created channel. The uniqueness pre-check is racy against
// concurrent creates, so a short_code constraint violation on insert is
// treated as a collision and retried with a fresh code. A custom alias is
// used as-is and never retried; a collision on it surfaces as ErrAliasTaken.
func (s *URLService) CreateShortURL(ctx context.Context, req *domain.CreateURLRequest, ownerID int64) (*domain.ShortURL, error) {
	expiresAt := s.expiryFor(req.ExpiresInDays)

	var lastErr error
	for i := 0; i < s.cfg.CodeGenerationRetries; i++ {
		code := req.CustomAlias
		if code == "" {
			generated, err := generator.EnsureUnique(ctx, s.cfg.CodeLength, s.cfg.CodeGenerationRetries, s.urlRepo.CodeExists)
			if err != nil {
				if errors.Is(err, generator.ErrExhausted) {
					return nil, domain.ErrCodeGenerationExhausted
				}
				return nil, fmt.Errorf("failed to generate short code: %w", err)
			}
			code = generated
		}

		url := &domain.ShortURL{
			ShortCode:   code,
			OriginalURL: req.OriginalURL,
			Title:       req.Title,
			Description: req.Description,
			IsActive:    true,
			ExpiresAt:   expiresAt,
			OwnerID:     ownerID,
		}

		err := s.urlRepo.Create(ctx, url)
		if err == nil {
			metrics.URLsCreated.Inc()
			s.publisher.Publish(ctx, domain.URLCreatedEvent{
				URLID:       url.ID,
				ShortCode:   url.ShortCode,
				OriginalURL: url.OriginalURL,
				OwnerID:     url.OwnerID,
				ExpiresAt:   url.ExpiresAt,
				CreatedAt:   url.CreatedAt,
			})
			return url, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "short_code") {
			if req.CustomAlias != "" {
				return nil, domain.ErrAliasTaken
			}
			// Lost the check-then-insert race; try a fresh code.
			lastErr = err
			continue
		}

		return nil, fmt.Errorf("failed to create short url: %w", err)
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrCodeGenerationExhausted, lastErr)
}

// Resolve returns the live link for a short code, reading through the cache.
// Outcomes: the link, ErrURLNotFound, or ErrURLGone for expired or
// deactivated links. Expiry is compared against the current time.
func (s *URLService) Resolve(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	key := redisrepo.URLKey(shortCode)

	var cached domain.ShortURL
	if s.cache.GetJSON(ctx, key, &cached) {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return s.live(&cached)
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	url, err := s.urlRepo.GetByCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrURLNotFound
		}
		return nil, fmt.Errorf("failed to resolve short url: %w", err)
	}

	if _, err := s.live(url); err != nil {
		return nil, err
	}

	// Best-effort population. Counters in the snapshot may lag behind the
	// store; only existence, destination, expiry and activation are trusted
	// from it.
	s.cache.Set(ctx, key, url, s.cfg.CacheTTL)

	return url, nil
}

func (s *URLService) GetUserURLs(ctx context.Context, ownerID int64, limit, offset int) ([]domain.ShortURL, error) {
	urls, err := s.urlRepo.GetByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list urls: %w", err)
	}
	return urls, nil
}

// DeactivateURL soft-deletes an owner's link and invalidates its cache entry
// so stale snapshots cannot keep redirecting.
func (s *URLService) DeactivateURL(ctx context.Context, id, ownerID int64) error {
	shortCode, err := s.urlRepo.Deactivate(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrURLNotFound
		}
		return fmt.Errorf("failed to deactivate url: %w", err)
	}

	s.cache.Delete(ctx, redisrepo.URLKey(shortCode))
	return nil
}

func (s *URLService) live(url *domain.ShortURL) (*domain.ShortURL, error) {
	if !url.IsActive || url.Expired(time.Now().UTC()) {
		return nil, domain.ErrURLGone
	}
	return url, nil
}

func (s *URLService) expiryFor(expiresInDays *int) *time.Time {
	days := s.cfg.DefaultExpiryDays
	if expiresInDays != nil {
		days = *expiresInDays
	}
	expiresAt := time.Now().UTC().AddDate(0, 0, days)
	return &expiresAt
}
