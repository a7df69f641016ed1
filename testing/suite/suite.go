package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
)

const (
	containerTTL = 120
	startTimeout = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite holds a Redis-backed game repository for a single test.
type Suite struct {
	// Storage is the raw client, for assertions the repository does not expose (TTL, keys).
	Storage *redis.Client
	Games   repository.GameRepository
}

// New - starts a Redis container and wires a game repository with the given ttl to it.
// The container is purged when the test ends.
func New(t *testing.T, ttl time.Duration) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	pool.MaxWait = startTimeout

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(hostConfig *docker.HostConfig) {
		hostConfig.AutoRemove = true
		hostConfig.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	// never returns error
	_ = resource.Expire(containerTTL)

	conf := config.Redis{
		Host: resource.GetBoundIP(redisPort),
		Port: resource.GetPort(redisPort),
	}

	var client *redis.Client
	if err = pool.Retry(func() error {
		client, err = storage.NewRedis(ctx, conf)
		return err
	}); err != nil {
		t.Fatalf("could not connect to redis at %s: %v", conf.GetRedisAddr(), err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		Storage: client,
		Games:   repository.NewGameRepository(client, ttl),
	}
}
