package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// IdentityRepository - keeps the id of the local user between runs.
type IdentityRepository interface {
	Load(ctx context.Context) (entity.ID, error)
	Save(ctx context.Context, id entity.ID) error
}

type fileIdentity struct {
	path string
}

// NewFileIdentityRepository - stores the id as plain text in the file at path.
func NewFileIdentityRepository(path string) IdentityRepository {
	return &fileIdentity{
		path: path,
	}
}

func (that *fileIdentity) Load(_ context.Context) (entity.ID, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", apperror.ErrUserIDMissing
	}

	if err != nil {
		return "", fmt.Errorf("failed to read identity file: %w", err)
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", apperror.ErrEmptyUserID
	}

	return entity.ID(id), nil
}

func (that *fileIdentity) Save(_ context.Context, id entity.ID) error {
	if strings.TrimSpace(id.String()) == "" {
		return apperror.ErrEmptyUserID
	}

	if dir := filepath.Dir(that.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create identity dir: %w", err)
		}
	}

	if err := os.WriteFile(that.path, []byte(strings.TrimSpace(id.String())), 0o600); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}

	return nil
}

type redisIdentity struct {
	client *redis.Client
	key    string
}

// NewRedisIdentityRepository - stores the id under key in Redis.
func NewRedisIdentityRepository(client *redis.Client, key string) IdentityRepository {
	return &redisIdentity{
		client: client,
		key:    key,
	}
}

func (that *redisIdentity) Load(ctx context.Context) (entity.ID, error) {
	response, err := that.client.Get(ctx, that.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrUserIDMissing
	}

	if err != nil {
		return "", fmt.Errorf("failed to get identity: %w", err)
	}

	id := strings.TrimSpace(response)
	if id == "" {
		return "", apperror.ErrEmptyUserID
	}

	return entity.ID(id), nil
}

func (that *redisIdentity) Save(ctx context.Context, id entity.ID) error {
	value := strings.TrimSpace(id.String())
	if value == "" {
		return apperror.ErrEmptyUserID
	}

	if err := that.client.Set(ctx, that.key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set identity: %w", err)
	}

	return nil
}
