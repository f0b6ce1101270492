package storage

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage.go -package=mocks

// noinspection GoNameStartsWithPackageName
type StorageProvider interface {
	Driver() string
	Ping(ctx context.Context) error
	Close() error
}

// CheckHealth pings the provider, giving up after timeout.
func CheckHealth(ctx context.Context, provider StorageProvider, timeout time.Duration) error {
	if provider == nil {
		return ErrStorageUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := provider.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}
