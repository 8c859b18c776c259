package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/config"
	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/internal/metrics"
	"github.com/Javets70/url-shortner-backend/pkg/detector"
)

type VisitCounterRepository interface {
	IncrementVisits(ctx context.Context, id int64) (int64, time.Time, error)
}

type VisitRepository interface {
	Record(ctx context.Context, visit *domain.VisitRequest) error
}

type VisitService struct {
	urlRepo   VisitCounterRepository
	visitRepo VisitRepository
	publisher EventPublisher
	cfg       config.ShortenerConfig
}

func NewVisitService(urlRepo VisitCounterRepository, visitRepo VisitRepository, publisher EventPublisher, cfg config.ShortenerConfig) *VisitService {
	return &VisitService{
		urlRepo:   urlRepo,
		visitRepo: visitRepo,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Record captures one visit: it bumps the link's counter atomically in the
// store, appends the visit row, then evaluates notification thresholds.
// Store failures abort the record and surface; publish failures never do.
func (s *VisitService) Record(ctx context.Context, url *domain.ShortURL, ipAddress, userAgent, referer string) (*domain.ShortURL, error) {
	count, lastVisited, err := s.urlRepo.IncrementVisits(ctx, url.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment visit count: %w", err)
	}
	url.VisitCount = count
	url.LastVisited = &lastVisited

	visit := &domain.VisitRequest{
		URLID:      url.ID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Referer:    referer,
		DeviceType: detector.DetectDeviceType(userAgent),
	}
	if err := s.visitRepo.Record(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}
	metrics.VisitsRecorded.Inc()

	s.evaluateThresholds(ctx, url)

	return url, nil
}

func (s *VisitService) evaluateThresholds(ctx context.Context, url *domain.ShortURL) {
	// Equality, not >=: the milestone event fires exactly once per link
	// unless the counter is externally reset.
	if url.VisitCount == s.cfg.VisitThreshold {
		s.publisher.Publish(ctx, domain.VisitThresholdReachedEvent{
			URLID:      url.ID,
			ShortCode:  url.ShortCode,
			VisitCount: url.VisitCount,
			OwnerID:    url.OwnerID,
		})
	}

	if url.ExpiresAt == nil {
		return
	}

	remaining := time.Until(*url.ExpiresAt)
	warningWindow := time.Duration(s.cfg.ExpiryWarningDays) * 24 * time.Hour
	if remaining > 0 && remaining <= warningWindow {
		// Fires on every visit inside the warning window; downstream
		// consumers deduplicate if they need to.
		s.publisher.Publish(ctx, domain.URLExpiringSoonEvent{
			URLID:         url.ID,
			ShortCode:     url.ShortCode,
			ExpiresAt:     *url.ExpiresAt,
			DaysRemaining: int(remaining.Hours() / 24),
			OwnerID:       url.OwnerID,
		})
	}
}
