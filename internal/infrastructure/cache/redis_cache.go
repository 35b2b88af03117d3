// Package cache implementa ports.ReportCache sobre Redis.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/metrics"
)

const (
	defaultNamespace = "inventory:"
	generationKey    = "gen"
)

// RedisCache guarda reportes serializados. Invalidate incrementa un contador
// de generación que forma parte de cada clave, así las entradas anteriores
// quedan inalcanzables y expiran por TTL.
type RedisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache envuelve un cliente ya configurado.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, namespace: defaultNamespace}
}

// WithNamespace cambia el prefijo de las claves (REDIS_PREFIX).
func (c *RedisCache) WithNamespace(ns string) *RedisCache {
	return &RedisCache{client: c.client, namespace: ns}
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.namespace+generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) key(gen int64, key string) string {
	return c.namespace + strconv.FormatInt(gen, 10) + ":" + key
}

// Get devuelve el valor de la clave en la generación actual junto con esa generación.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.client.Get(ctx, c.key(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.IncCacheMiss()
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	metrics.IncCacheHit()
	return raw, gen, true, nil
}

// Set guarda el valor con TTL en la generación gen (la que devolvió Get).
// Si hubo un Invalidate en medio, la entrada queda inalcanzable.
func (c *RedisCache) Set(ctx context.Context, key string, gen int64, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(gen, key), value, ttl).Err()
}

// Invalidate descarta todas las entradas vigentes.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.namespace+generationKey).Err()
}

// Ping verifica la conexión.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente subyacente.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
