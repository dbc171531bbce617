package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"emotion-detector-go/internal/model"
)

// Entry 缓存的检测结果
type Entry struct {
	Key       string               `json:"key"`
	Result    *model.EmotionResult `json:"result"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

func (e *Entry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Cache 缓存接口，未命中时返回 (nil, nil)
type Cache interface {
	Get(ctx context.Context, key string) (*model.EmotionResult, error)
	Set(ctx context.Context, key string, result *model.EmotionResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cleaner 能主动清理过期条目的缓存
type Cleaner interface {
	CleanExpired(ctx context.Context) (int64, error)
}

// RunCleanup 每隔 interval 清理一次过期条目，直到 ctx 结束
// 缓存没有实现 Cleaner（例如 Redis 自带 TTL）时直接返回
func RunCleanup(ctx context.Context, c Cache, interval time.Duration, logger *zap.Logger) {
	cleaner, ok := c.(Cleaner)
	if !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := cleaner.CleanExpired(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("cache cleanup failed", zap.Error(err))
				}
				continue
			}
			if removed > 0 {
				logger.Debug("expired cache entries removed", zap.Int64("count", removed))
			}
		}
	}
}

// Close 关闭持有连接的缓存（PostgreSQL、Redis），其他实现不做任何事
func Close(c Cache) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Key 文本的缓存键，完全相同的文本才命中
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func newEntry(key string, result *model.EmotionResult, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Key:       key,
		Result:    result,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// FileCache 基于文件的缓存实现
type FileCache struct {
	dir string
	mu  sync.RWMutex
}

// NewFileCache 创建文件缓存
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create cache directory")
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) cacheFile(key string) string {
	return filepath.Join(c.dir, Key(key)+".json")
}

// Get 获取缓存
func (c *FileCache) Get(ctx context.Context, key string) (*model.EmotionResult, error) {
	c.mu.RLock()
	data, err := os.ReadFile(c.cacheFile(key))
	c.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	// 过期了，删除缓存
	if entry.expired(time.Now()) {
		return nil, c.Delete(ctx, key)
	}

	return entry.Result, nil
}

// Set 设置缓存
func (c *FileCache) Set(ctx context.Context, key string, result *model.EmotionResult, ttl time.Duration) error {
	jsonData, err := json.MarshalIndent(newEntry(key, result, ttl), "", "  ")
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return os.WriteFile(c.cacheFile(key), jsonData, 0644)
}

// Delete 删除缓存
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.cacheFile(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// CleanExpired 删除目录里已过期或无法解析的缓存文件
func (c *FileCache) CleanExpired(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return 0, err
	}

	var removed int64
	now := time.Now()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err == nil && !entry.expired(now) {
			continue
		}
		if err := os.Remove(file); err == nil {
			removed++
		}
	}
	return removed, nil
}

// MemoryCache 内存缓存实现（用于测试或单机部署）
type MemoryCache struct {
	data map[string]*Entry
	mu   sync.Mutex
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]*Entry),
	}
}

// Get 获取缓存
func (c *MemoryCache) Get(ctx context.Context, key string) (*model.EmotionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[key]
	if !ok {
		return nil, nil
	}

	if entry.expired(time.Now()) {
		delete(c.data, key)
		return nil, nil
	}

	return entry.Result, nil
}

// Set 设置缓存
func (c *MemoryCache) Set(ctx context.Context, key string, result *model.EmotionResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = newEntry(key, result, ttl)
	return nil
}

// Delete 删除缓存
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

// CleanExpired 清理过期缓存
func (c *MemoryCache) CleanExpired(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int64
	now := time.Now()
	for key, entry := range c.data {
		if entry.expired(now) {
			delete(c.data, key)
			removed++
		}
	}
	return removed, nil
}

// PostgresCache PostgreSQL缓存实现
type PostgresCache struct {
	db *sql.DB
}

// NewPostgresCache 创建PostgreSQL缓存并确保表存在
func NewPostgresCache(ctx context.Context, databaseURL string) (*PostgresCache, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	c := &PostgresCache{db: db}
	if err := c.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *PostgresCache) migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS emotion_cache (
		key        TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL
	)
	`
	_, err := c.db.ExecContext(ctx, query)
	return errors.Wrap(err, "failed to create emotion_cache table")
}

// Get 获取缓存
func (c *PostgresCache) Get(ctx context.Context, key string) (*model.EmotionResult, error) {
	query := `
	SELECT data
	FROM emotion_cache
	WHERE key = $1 AND expires_at > NOW()
	`

	var dataJSON []byte
	err := c.db.QueryRowContext(ctx, query, Key(key)).Scan(&dataJSON)
	if err == sql.ErrNoRows {
		return nil, nil // 缓存不存在或已过期
	}
	if err != nil {
		return nil, err
	}

	var result model.EmotionResult
	if err := json.Unmarshal(dataJSON, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set 设置缓存
func (c *PostgresCache) Set(ctx context.Context, key string, result *model.EmotionResult, ttl time.Duration) error {
	dataJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO emotion_cache (key, data, created_at, expires_at)
	VALUES ($1, $2, NOW(), $3)
	ON CONFLICT (key)
	DO UPDATE SET data = $2, created_at = NOW(), expires_at = $3
	`

	_, err = c.db.ExecContext(ctx, query, Key(key), dataJSON, time.Now().Add(ttl))
	return err
}

// Delete 删除缓存
func (c *PostgresCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM emotion_cache WHERE key = $1`, Key(key))
	return err
}

// Close 关闭数据库连接
func (c *PostgresCache) Close() error {
	return c.db.Close()
}

// CleanExpired 清理过期缓存
func (c *PostgresCache) CleanExpired(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM emotion_cache WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// RedisCache Redis缓存实现，过期交给 Redis TTL
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache 根据 redis:// URL 创建缓存
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}
	return &RedisCache{client: client, prefix: "emotion:"}, nil
}

func (c *RedisCache) redisKey(key string) string {
	return c.prefix + Key(key)
}

// Get 获取缓存
func (c *RedisCache) Get(ctx context.Context, key string) (*model.EmotionResult, error) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result model.EmotionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set 设置缓存
func (c *RedisCache) Set(ctx context.Context, key string, result *model.EmotionResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.redisKey(key), data, ttl).Err()
}

// Delete 删除缓存
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.redisKey(key)).Err()
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}
