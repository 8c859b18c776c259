package middleware

import (
	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/internal/metrics"
	"github.com/Javets70/url-shortner-backend/internal/ratelimit"
	"github.com/Javets70/url-shortner-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// RateLimit rejects requests from clients that exhausted their window.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Admit(c.Request.Context(), c.ClientIP()) {
			metrics.RateLimitRejections.Inc()
			c.Error(domain.ErrRateLimitExceeded)
			response.TooManyRequests(c, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
