package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/internal/metrics"
	"github.com/Javets70/url-shortner-backend/internal/middleware"
	"github.com/Javets70/url-shortner-backend/pkg/response"
	"github.com/Javets70/url-shortner-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type URLService interface {
	CreateShortURL(ctx context.Context, req *domain.CreateURLRequest, ownerID int64) (*domain.ShortURL, error)
	Resolve(ctx context.Context, shortCode string) (*domain.ShortURL, error)
	GetUserURLs(ctx context.Context, ownerID int64, limit, offset int) ([]domain.ShortURL, error)
	DeactivateURL(ctx context.Context, id, ownerID int64) error
}

type VisitRecorder interface {
	Record(ctx context.Context, url *domain.ShortURL, ipAddress, userAgent, referer string) (*domain.ShortURL, error)
}

type URLHandler struct {
	urls    URLService
	visits  VisitRecorder
	baseURL string
}

func NewURLHandler(urls URLService, visits VisitRecorder, baseURL string) *URLHandler {
	return &URLHandler{
		urls:    urls,
		visits:  visits,
		baseURL: baseURL,
	}
}

func (h *URLHandler) CreateShortURL(c *gin.Context) {
	var req domain.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if errs := validator.Validate(&req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	if req.CustomAlias != "" && validator.IsReservedKeyword(req.CustomAlias) {
		response.BadRequest(c, "Custom alias is reserved")
		return
	}

	url, err := h.urls.CreateShortURL(c.Request.Context(), &req, middleware.OwnerID(c))
	if err != nil {
		if errors.Is(err, domain.ErrAliasTaken) {
			response.Conflict(c, "Custom alias is already taken")
			return
		}
		response.InternalServerError(c, "Failed to create short URL")
		return
	}

	response.Created(c, "Short URL created", gin.H{
		"id":           url.ID,
		"short_url":    h.baseURL + "/" + url.ShortCode,
		"short_code":   url.ShortCode,
		"original_url": url.OriginalURL,
		"title":        url.Title,
		"expires_at":   url.ExpiresAt,
	})
}

func (h *URLHandler) ListURLs(c *gin.Context) {
	page := 1
	if pageParam := c.Query("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}

	pageSize := 20
	if sizeParam := c.Query("page_size"); sizeParam != "" {
		if s, err := strconv.Atoi(sizeParam); err == nil && s > 0 && s <= 100 {
			pageSize = s
		}
	}

	urls, err := h.urls.GetUserURLs(c.Request.Context(), middleware.OwnerID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		response.InternalServerError(c, "Failed to list URLs")
		return
	}

	response.OK(c, "URLs retrieved", gin.H{
		"urls":      urls,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *URLHandler) DeactivateURL(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid URL id")
		return
	}

	if err := h.urls.DeactivateURL(c.Request.Context(), id, middleware.OwnerID(c)); err != nil {
		if errors.Is(err, domain.ErrURLNotFound) {
			response.NotFound(c, "URL not found")
			return
		}
		response.InternalServerError(c, "Failed to deactivate URL")
		return
	}

	response.OK(c, "URL deactivated successfully", nil)
}

// Redirect resolves a short code and sends the visitor to the destination,
// recording the visit on the way. Distinct outcomes: 302, 404, 410.
func (h *URLHandler) Redirect(c *gin.Context) {
	shortCode := c.Param("shortCode")

	url, err := h.urls.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrURLNotFound):
			metrics.Redirects.WithLabelValues("not_found").Inc()
			response.NotFound(c, "Short URL not found")
		case errors.Is(err, domain.ErrURLGone):
			metrics.Redirects.WithLabelValues("gone").Inc()
			response.Gone(c, "Short URL is no longer available")
		default:
			metrics.Redirects.WithLabelValues("error").Inc()
			response.InternalServerError(c, "Failed to resolve short URL")
		}
		return
	}

	if _, err := h.visits.Record(c.Request.Context(), url, c.ClientIP(), c.Request.UserAgent(), c.Request.Referer()); err != nil {
		metrics.Redirects.WithLabelValues("error").Inc()
		response.InternalServerError(c, "Failed to record visit")
		return
	}

	metrics.Redirects.WithLabelValues("redirected").Inc()
	c.Redirect(http.StatusFound, url.OriginalURL)
}
