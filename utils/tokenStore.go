package utils

import (
	"context"
	"log"
	"sync"
	"time"

	"techstorm/config"
	"techstorm/database"
	"techstorm/models"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// TokenStore remembers revoked token ids until the token would have expired anyway
type TokenStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

var (
	tokenStoreMu sync.RWMutex
	tokenStore   TokenStore
)

// InitTokenStore uses redis when REDIS_ADDR is set, the database otherwise
func InitTokenStore() {
	cfg := config.AppConfig
	if cfg.RedisAddr == "" {
		SetTokenStore(DBTokenStore{})
		log.Println("[TOKENS] revocations stored in the database")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[TOKENS] could not reach redis at %s (%v), falling back to the database", cfg.RedisAddr, err)
		SetTokenStore(DBTokenStore{})
		return
	}

	SetTokenStore(NewRedisTokenStore(rdb))
	log.Printf("[TOKENS] revocations stored in redis %s db %d", cfg.RedisAddr, cfg.RedisDB)
}

func SetTokenStore(s TokenStore) {
	tokenStoreMu.Lock()
	defer tokenStoreMu.Unlock()
	tokenStore = s
}

// Revocations returns the active store, defaulting to the database one
func Revocations() TokenStore {
	tokenStoreMu.RLock()
	defer tokenStoreMu.RUnlock()
	if tokenStore == nil {
		return DBTokenStore{}
	}
	return tokenStore
}

// --- redis ---

const revokedPrefix = "revoked:"

type RedisTokenStore struct {
	Client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return errors.Wrap(s.Client.Set(ctx, revokedPrefix+jti, 1, ttl).Err(), "redis revoke")
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.Client.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis exists")
	}
	return n > 0, nil
}

// PurgeExpired is a no-op: redis expires keys itself
func (s *RedisTokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// --- database ---

type DBTokenStore struct{}

func (DBTokenStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	row := models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}
	err := database.Database.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	return errors.Wrap(err, "store revoked token")
}

func (DBTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := database.Database.Db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jti = ? AND expires_at > ?", jti, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "lookup revoked token")
	}
	return count > 0, nil
}

func (DBTokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := database.Database.Db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.RevokedToken{})
	return res.RowsAffected, errors.Wrap(res.Error, "purge revoked tokens")
}
