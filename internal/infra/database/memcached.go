package database

import (
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached returns a client for the agency cache. An unreachable server
// is logged but not fatal; cache reads then miss.
func NewMemcached(server string) *memcache.Client {
	client := memcache.New(server)
	client.Timeout = 200 * time.Millisecond
	client.MaxIdleConns = 8

	if err := client.Ping(); err != nil {
		slog.Warn("memcached unreachable",
			slog.String("server", server),
			slog.String("error", err.Error()),
			slog.String("module", "database"),
		)
	}
	return client
}
