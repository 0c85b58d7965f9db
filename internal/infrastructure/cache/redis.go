// Package cache guarda en Redis las estadísticas de contactos por tenant.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

const (
	statsKeyPrefix = "contacts:stats:"
	statsGenPrefix = "contacts:stats-gen:"
)

// NewRedis crea el cliente go-redis y valida la conexión.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// StatsCache implementa contacts.StatsCache sobre Redis. Cada entrada expira tras ttl;
// la generación del tenant vive en una clave aparte que expira tras genTTL sin invalidaciones.
type StatsCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// genTTL debe superar con holgura lo que tarda un cálculo de estadísticas.
const genTTL = 24 * time.Hour

// setIfGen guarda la entrada solo si la generación no cambió desde el Get.
var setIfGen = redis.NewScript(`
local g = redis.call('GET', KEYS[2])
if not g then g = '0' end
if g ~= ARGV[2] then return 0 end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// NewStatsCache construye la caché. ttl <= 0 usa 5 minutos.
func NewStatsCache(rdb redis.Cmdable, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func statsKey(tenantID string) string { return statsKeyPrefix + tenantID }

func genKey(tenantID string) string { return statsGenPrefix + tenantID }

// Get devuelve nil si no hay entrada; una entrada corrupta cuenta como ausente.
func (c *StatsCache) Get(ctx context.Context, tenantID string) (*entity.ContactStats, uint64, error) {
	vals, err := c.rdb.MGet(ctx, statsKey(tenantID), genKey(tenantID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis get stats: %w", err)
	}
	var gen uint64
	if raw, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return nil, 0, fmt.Errorf("redis get stats: generación inválida %q", raw)
		}
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, nil
	}
	var s entity.ContactStats
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, gen, nil
	}
	return &s, gen, nil
}

func (c *StatsCache) Set(ctx context.Context, tenantID string, stats *entity.ContactStats, gen uint64) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	keys := []string{statsKey(tenantID), genKey(tenantID)}
	err = setIfGen.Run(ctx, c.rdb, keys, raw, strconv.FormatUint(gen, 10), c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("redis set stats: %w", err)
	}
	return nil
}

func (c *StatsCache) Invalidate(ctx context.Context, tenantID string) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(tenantID))
		p.Expire(ctx, genKey(tenantID), genTTL)
		p.Del(ctx, statsKey(tenantID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate stats: %w", err)
	}
	return nil
}
