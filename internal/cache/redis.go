package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skydesk/reservations/config"
	"github.com/skydesk/reservations/internal/domain"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	reportsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, reportsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		reportsTTL: reportsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func (c *RedisCache) GetReport(ctx context.Context, period string) (*domain.ReportSummary, error) {
	data, err := c.client.Get(ctx, reportKey(period)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var summary domain.ReportSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *RedisCache) SetReport(ctx context.Context, period string, summary *domain.ReportSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reportKey(period), payload, c.reportsTTL).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func reportKey(period string) string {
	if period == "" {
		period = "all"
	}
	return "cache:reports:" + period
}
