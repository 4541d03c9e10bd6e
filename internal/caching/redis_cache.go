package caching

import (
	"context"
	"encoding/json"
	"strings"

	"panditconnect/internal/models"

	"github.com/redis/go-redis/v9"
)

// businessRecordKey is the single cache key. The cached record is an advisory
// fallback copy, never authoritative once the store holds a row, so it carries
// no TTL.
const businessRecordKey = "panditconnect:business:profile"

type CacheService interface {
	GetBusinessRecord(ctx context.Context) (*models.BusinessRecord, error)
	SetBusinessRecord(ctx context.Context, record *models.BusinessRecord) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as a bare host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "rediss://"), "redis://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetBusinessRecord(ctx context.Context) (*models.BusinessRecord, error) {
	data, err := r.client.Get(ctx, businessRecordKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var record models.BusinessRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *redisCacheService) SetBusinessRecord(ctx context.Context, record *models.BusinessRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, businessRecordKey, data, 0).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
