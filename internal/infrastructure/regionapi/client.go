package regionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

// NewClient создает клиент REST API регионов
func NewClient(cfg *config.RegionAPIConfig, logger *zap.Logger) repository.RegionAPI {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		logger:  logger.Named("region_api"),
	}
}

// errorEnvelope - тело ошибки API: {"success": false, "error": {...}}
type errorEnvelope struct {
	Error *errors.AppError `json:"error"`
}

func (c *client) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	var regions []*domain.Region
	if err := c.do(ctx, http.MethodGet, "/regions/", nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (c *client) CreateRegion(ctx context.Context, m domain.RegionMutation) (*domain.Region, error) {
	var region domain.Region
	if err := c.do(ctx, http.MethodPost, "/regions/", m, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

func (c *client) UpdateRegion(ctx context.Context, id string, m domain.RegionMutation) (*domain.Region, error) {
	var region domain.Region
	if err := c.do(ctx, http.MethodPatch, "/regions/"+url.PathEscape(id)+"/", m, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

func (c *client) DeleteRegion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/regions/"+url.PathEscape(id)+"/", nil, nil)
}

func (c *client) GetRegionStats(ctx context.Context, id string) (*domain.RegionStats, error) {
	var stats domain.RegionStats
	if err := c.do(ctx, http.MethodGet, "/regions/"+url.PathEscape(id)+"/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *client) ListCities(ctx context.Context) ([]*domain.City, error) {
	var cities []*domain.City
	if err := c.do(ctx, http.MethodGet, "/regions/cities/", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *client) CreateCity(ctx context.Context, m domain.CityMutation) (*domain.City, error) {
	var city domain.City
	if err := c.do(ctx, http.MethodPost, "/regions/cities/", m, &city); err != nil {
		return nil, err
	}
	return &city, nil
}

func (c *client) UpdateCity(ctx context.Context, id string, m domain.CityMutation) (*domain.City, error) {
	var city domain.City
	if err := c.do(ctx, http.MethodPatch, "/regions/cities/"+url.PathEscape(id)+"/", m, &city); err != nil {
		return nil, err
	}
	return &city, nil
}

func (c *client) DeleteCity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/regions/cities/"+url.PathEscape(id)+"/", nil, nil)
}

// do выполняет запрос. Ответы 4xx с телом ошибки возвращаются как AppError,
// сбои транспорта и 5xx - как ErrNetwork.
func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	c.logger.Debug("Calling region API",
		zap.String("method", method),
		zap.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.String("url", endpoint), zap.Error(err))
		return errors.ErrNetwork.Wrap(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.ErrNetwork.Wrap(err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("Region API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(data)))
		return decodeError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return errors.ErrNetwork.Wrap(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func decodeError(status int, data []byte) error {
	if status >= 500 {
		return errors.ErrNetwork.WithDetails(map[string]interface{}{
			"status": status,
			"body":   string(data),
		})
	}

	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error != nil && env.Error.Code != "" {
		appErr := *env.Error
		appErr.StatusCode = status
		return &appErr
	}

	return errors.New(
		fmt.Sprintf("HTTP_%d", status),
		strings.TrimSpace(string(data)),
		status,
	)
}
