package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"checkdev-site/internal/logger"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// Client reads category subscriptions from the notification service.
type Client interface {
	GetSubscribedCategories(ctx context.Context, userID int) ([]int, error)
	Close() error
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

type httpClient struct {
	rest *resty.Client
}

// NewClient returns a client for cfg.BaseURL. An empty base URL yields a
// client that reports no subscriptions.
func NewClient(cfg Config) Client {
	if cfg.BaseURL == "" {
		return noopClient{}
	}

	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json")

	return &httpClient{rest: rest}
}

func (c *httpClient) GetSubscribedCategories(ctx context.Context, userID int) ([]int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "client"),
		zap.String("method", "GetSubscribedCategories"),
	)

	var categories []int
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("userId", strconv.Itoa(userID)).
		SetResult(&categories).
		Get("/subscribeCategory/{userId}")
	if err != nil {
		log.Error("notification service request failed", zap.Error(err))
		return nil, fmt.Errorf("notification service: %w", err)
	}

	if resp.IsError() {
		log.Error("notification service returned error", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("notification service: unexpected status %d", resp.StatusCode())
	}

	if categories == nil {
		categories = []int{}
	}
	return categories, nil
}

func (c *httpClient) Close() error {
	return c.rest.Close()
}

type noopClient struct{}

func (noopClient) GetSubscribedCategories(context.Context, int) ([]int, error) {
	return []int{}, nil
}

func (noopClient) Close() error { return nil }
