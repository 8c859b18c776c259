package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/internal/ratelimit"
	redisrepo "github.com/Javets70/url-shortner-backend/internal/repository/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitedRouter(t *testing.T, limit int) (*gin.Engine, *[]error) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	limiter := ratelimit.New(redisrepo.NewCache(client), limit, time.Minute)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	var seen []error
	router.Use(func(c *gin.Context) {
		c.Next()
		for _, e := range c.Errors {
			seen = append(seen, e.Err)
		}
	})
	router.Use(RateLimit(limiter))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router, &seen
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	router, seen := setupRateLimitedRouter(t, 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d should be admitted", i+1)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Len(t, *seen, 1)
	assert.True(t, errors.Is((*seen)[0], domain.ErrRateLimitExceeded))
}
