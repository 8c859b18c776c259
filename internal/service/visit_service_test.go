package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVisitServiceForTest() (*VisitService, *mocks.MockURLRepository, *mocks.MockVisitRepository, *mocks.MockPublisher) {
	mockURLRepo := new(mocks.MockURLRepository)
	mockVisitRepo := new(mocks.MockVisitRepository)
	mockPublisher := new(mocks.MockPublisher)
	svc := NewVisitService(mockURLRepo, mockVisitRepo, mockPublisher, testShortenerConfig())
	return svc, mockURLRepo, mockVisitRepo, mockPublisher
}

func TestRecord_IncrementsCounterAndPersistsVisit(t *testing.T) {
	svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
	ctx := context.Background()

	url := &domain.ShortURL{ID: 1, ShortCode: "abc123", OwnerID: 7, IsActive: true}
	now := time.Now().UTC()

	mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(int64(5), now, nil).Once()
	mockVisitRepo.On("Record", ctx, mock.MatchedBy(func(visit *domain.VisitRequest) bool {
		return visit.URLID == 1 &&
			visit.IPAddress == "203.0.113.7" &&
			visit.Referer == "https://news.example" &&
			visit.DeviceType == "desktop"
	})).Return(nil).Once()

	result, err := svc.Record(ctx, url, "203.0.113.7", "Mozilla/5.0 (Macintosh; Intel Mac OS X)", "https://news.example")

	assert.NoError(t, err)
	assert.Equal(t, int64(5), result.VisitCount)
	require.NotNil(t, result.LastVisited)
	assert.True(t, now.Equal(*result.LastVisited))

	mockURLRepo.AssertExpectations(t)
	mockVisitRepo.AssertExpectations(t)
	mockPublisher.AssertNotCalled(t, "Publish")
}

func TestRecord_CounterFailureAbortsRecord(t *testing.T) {
	svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
	ctx := context.Background()

	url := &domain.ShortURL{ID: 1, ShortCode: "abc123"}
	mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(int64(0), time.Time{}, errors.New("connection refused")).Once()

	result, err := svc.Record(ctx, url, "203.0.113.7", "", "")

	assert.Error(t, err)
	assert.Nil(t, result)
	mockVisitRepo.AssertNotCalled(t, "Record")
	mockPublisher.AssertNotCalled(t, "Publish")
}

func TestRecord_VisitInsertFailureAbortsRecord(t *testing.T) {
	svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
	ctx := context.Background()

	url := &domain.ShortURL{ID: 1, ShortCode: "abc123"}
	mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(int64(5), time.Now().UTC(), nil).Once()
	mockVisitRepo.On("Record", ctx, mock.Anything).Return(errors.New("insert failed")).Once()

	result, err := svc.Record(ctx, url, "203.0.113.7", "", "")

	assert.Error(t, err)
	assert.Nil(t, result)
	mockPublisher.AssertNotCalled(t, "Publish")
}

func TestRecord_ThresholdEventFiresAtExactMilestone(t *testing.T) {
	svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
	ctx := context.Background()

	url := &domain.ShortURL{ID: 1, ShortCode: "abc123", OwnerID: 7}
	mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(int64(100), time.Now().UTC(), nil).Once()
	mockVisitRepo.On("Record", ctx, mock.Anything).Return(nil).Once()

	mockPublisher.On("Publish", ctx, mock.MatchedBy(func(event domain.Event) bool {
		milestone, ok := event.(domain.VisitThresholdReachedEvent)
		return ok && milestone.URLID == 1 && milestone.VisitCount == 100 && milestone.OwnerID == 7
	})).Return(true).Once()

	_, err := svc.Record(ctx, url, "203.0.113.7", "", "")

	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
}

func TestRecord_NoThresholdEventBeforeOrAfterMilestone(t *testing.T) {
	for _, count := range []int64{99, 101} {
		svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
		ctx := context.Background()

		url := &domain.ShortURL{ID: 1, ShortCode: "abc123"}
		mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(count, time.Now().UTC(), nil).Once()
		mockVisitRepo.On("Record", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Record(ctx, url, "203.0.113.7", "", "")

		assert.NoError(t, err)
		mockPublisher.AssertNotCalled(t, "Publish")
	}
}

func TestRecord_ExpiryWarningWithinWindow(t *testing.T) {
	svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
	ctx := context.Background()

	expires := time.Now().UTC().Add(3*24*time.Hour + time.Hour)
	url := &domain.ShortURL{ID: 1, ShortCode: "abc123", OwnerID: 7, ExpiresAt: &expires}

	mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(int64(5), time.Now().UTC(), nil).Once()
	mockVisitRepo.On("Record", ctx, mock.Anything).Return(nil).Once()

	mockPublisher.On("Publish", ctx, mock.MatchedBy(func(event domain.Event) bool {
		warning, ok := event.(domain.URLExpiringSoonEvent)
		return ok && warning.URLID == 1 && warning.DaysRemaining == 3 && warning.ExpiresAt.Equal(expires)
	})).Return(true).Once()

	_, err := svc.Record(ctx, url, "203.0.113.7", "", "")

	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
}

func TestRecord_NoExpiryWarningOutsideWindow(t *testing.T) {
	svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
	ctx := context.Background()

	expires := time.Now().UTC().Add(30 * 24 * time.Hour)
	url := &domain.ShortURL{ID: 1, ShortCode: "abc123", ExpiresAt: &expires}

	mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(int64(5), time.Now().UTC(), nil).Once()
	mockVisitRepo.On("Record", ctx, mock.Anything).Return(nil).Once()

	_, err := svc.Record(ctx, url, "203.0.113.7", "", "")

	assert.NoError(t, err)
	mockPublisher.AssertNotCalled(t, "Publish")
}

func TestRecord_PublishFailureDoesNotFailRecord(t *testing.T) {
	svc, mockURLRepo, mockVisitRepo, mockPublisher := newVisitServiceForTest()
	ctx := context.Background()

	url := &domain.ShortURL{ID: 1, ShortCode: "abc123"}
	mockURLRepo.On("IncrementVisits", ctx, int64(1)).Return(int64(100), time.Now().UTC(), nil).Once()
	mockVisitRepo.On("Record", ctx, mock.Anything).Return(nil).Once()
	mockPublisher.On("Publish", ctx, mock.Anything).Return(false).Once()

	result, err := svc.Record(ctx, url, "203.0.113.7", "", "")

	assert.NoError(t, err, "publishing is best-effort and must never roll back the visit")
	assert.NotNil(t, result)
}

// countingURLRepo applies increments under a lock, mirroring the store's
// atomic UPDATE.
type countingURLRepo struct {
	mu    sync.Mutex
	count int64
}

func (r *countingURLRepo) IncrementVisits(ctx context.Context, id int64) (int64, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	return r.count, time.Now().UTC(), nil
}

type noopVisitRepo struct{}

func (noopVisitRepo) Record(ctx context.Context, visit *domain.VisitRequest) error { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, event domain.Event) bool { return true }

func TestRecord_ConcurrentVisitsLoseNoCounts(t *testing.T) {
	repo := &countingURLRepo{}
	svc := NewVisitService(repo, noopVisitRepo{}, noopPublisher{}, testShortenerConfig())

	const visitors = 50
	var wg sync.WaitGroup
	wg.Add(visitors)

	for i := 0; i < visitors; i++ {
		go func() {
			defer wg.Done()
			url := &domain.ShortURL{ID: 1, ShortCode: "abc123"}
			_, err := svc.Record(context.Background(), url, "203.0.113.7", "", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(visitors), repo.count, "N concurrent visits must increase the counter by exactly N")
}
