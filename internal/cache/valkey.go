package cache

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStorage keeps values in a Valkey (or Redis) server.
type ValkeyStorage struct {
	client valkey.Client
}

// OpenValkey connects to a server given as redis://[user:pass@]host:port[/db]
// or a bare host:port.
func OpenValkey(dsn string) (*ValkeyStorage, error) {
	opt, err := valkeyOptions(dsn)
	if err != nil {
		return nil, err
	}

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}
	return &ValkeyStorage{client: client}, nil
}

func valkeyOptions(dsn string) (valkey.ClientOption, error) {
	if dsn == "" {
		return valkey.ClientOption{}, fmt.Errorf("valkey cache requires a DSN")
	}
	if !strings.Contains(dsn, "://") {
		dsn = "redis://" + dsn
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return valkey.ClientOption{}, fmt.Errorf("parse valkey url: %w", err)
	}
	if u.Scheme != "redis" && u.Scheme != "valkey" {
		return valkey.ClientOption{}, fmt.Errorf("unsupported valkey scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return valkey.ClientOption{}, fmt.Errorf("valkey url has no host")
	}

	opt := valkey.ClientOption{
		InitAddress: []string{u.Host},
		// Client-side caching would serve a stale slot after another tab writes it.
		DisableCache: true,
	}
	if u.User != nil {
		opt.Username = u.User.Username()
		opt.Password, _ = u.User.Password()
	}
	if dbPath := strings.Trim(u.Path, "/"); dbPath != "" {
		db, err := strconv.Atoi(dbPath)
		if err != nil {
			return valkey.ClientOption{}, fmt.Errorf("invalid valkey db %q: %w", dbPath, err)
		}
		opt.SelectDB = db
	}
	return opt, nil
}

// Get implements Storage.
func (s *ValkeyStorage) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := s.client.B().Get().Key(key).Build()
	value, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Storage.
func (s *ValkeyStorage) Set(ctx context.Context, key, value string) error {
	cmd := s.client.B().Set().Key(key).Value(value).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

// Remove implements Storage.
func (s *ValkeyStorage) Remove(ctx context.Context, key string) error {
	cmd := s.client.B().Del().Key(key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}

// Close implements ClosableStorage.
func (s *ValkeyStorage) Close() error {
	s.client.Close()
	return nil
}
