package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seefood/backend/internal/domain"
	"github.com/seefood/backend/internal/pkg/logger"
)

// Client handles communication with the remote product catalog API.
type Client struct {
	http        *resty.Client
	fetchLimit  int
	rateLimiter *rate.Limiter
}

// NewClient creates a catalog API client. requestsPerHour bounds the
// upstream call rate; the catalog is fetched wholesale and paged
// client-side, so the limiter rarely engages outside refresh storms.
func NewClient(baseURL string, fetchLimit, requestsPerHour int) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600), 10)

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "SeeFood/1.0").
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		http:        httpClient,
		fetchLimit:  fetchLimit,
		rateLimiter: limiter,
	}
}

// FetchCatalog pulls the full product snapshot in one call. Records without
// a barcode cannot be identified downstream and are dropped at this
// boundary with a log line.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(c.fetchLimit)).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		logger.L.Error("catalog API returned non-OK status",
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()),
		)
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode())
	}

	var records []domain.Product
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrCatalogUnavailable, err)
	}

	products := make([]domain.Product, 0, len(records))
	dropped := 0
	for _, record := range records {
		if record.Barcode == "" {
			dropped++
			logger.L.Warn("dropping catalog record without a barcode",
				zap.String("description", record.Description),
			)
			continue
		}
		products = append(products, record)
	}

	logger.L.Info("fetched product catalog",
		zap.Int("products", len(products)),
		zap.Int("dropped", dropped),
	)
	return products, nil
}
