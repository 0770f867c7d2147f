package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/murkotick/catalog-service/internal/pkg/clock"
)

var (
	redisOnce sync.Once
	redisAddr string
	redisErr  error
)

// redisClient starts one Redis container for the whole package run.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	redisOnce.Do(func() {
		redisAddr, redisErr = startRedis()
	})
	if redisErr != nil {
		t.Skipf("redis container unavailable: %v", redisErr)
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func startRedis() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), nil
}

func TestRedis_Contract(t *testing.T) {
	client := redisClient(t)

	runCollectionContract(t, func(t *testing.T, clk clock.Clock) Collection[note] {
		// a fresh prefix isolates each subtest
		c, err := NewRedis[note](client, "test-"+uuid.NewString(), noteSchema(), clk)
		require.NoError(t, err)
		return c
	})
}

// commandLog records every command and fails it without reaching a server.
type commandLog struct {
	names []string
	err   error
}

func (h *commandLog) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *commandLog) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		h.names = append(h.names, cmd.Name())
		cmd.SetErr(h.err)
		return h.err
	}
}

func (h *commandLog) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			h.names = append(h.names, cmd.Name())
			cmd.SetErr(h.err)
		}
		return h.err
	}
}

func TestRedis_WritesAreSingleCommands(t *testing.T) {
	ctx := context.Background()
	hook := &commandLog{err: errors.New("connection reset")}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })

	c, err := NewRedis[note](client, "test", noteSchema(), clock.NewFake(epoch))
	require.NoError(t, err)

	_, err = c.Insert(ctx, &note{Title: strPtr("a")})
	require.ErrorIs(t, err, hook.err)
	assert.Equal(t, []string{"evalsha"}, hook.names)

	hook.names = nil
	_, err = c.Save(ctx, &note{ID: "n1", Title: strPtr("a")})
	require.ErrorIs(t, err, hook.err)
	assert.Equal(t, []string{"evalsha"}, hook.names)

	hook.names = nil
	require.ErrorIs(t, c.DeleteByID(ctx, "n1"), hook.err)
	assert.Equal(t, []string{"evalsha"}, hook.names)
}

func TestRedis_FailedIndexWriteLeavesNoDocument(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()

	c, err := NewRedis[note](client, "test-"+uuid.NewString(), noteSchema(), clock.NewFake(epoch))
	require.NoError(t, err)

	// a string under the id set key makes SADD fail with WRONGTYPE
	require.NoError(t, client.Set(ctx, c.idsKey(), "not-a-set", 0).Err())

	_, err = c.Insert(ctx, &note{ID: "n1", Title: strPtr("a")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateKey)

	_, err = c.Save(ctx, &note{ID: "n2", Title: strPtr("b")})
	require.Error(t, err)

	n, err := client.Exists(ctx, c.docKey("n1"), c.docKey("n2")).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedis_FailedIndexRemovalKeepsDocument(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()

	c, err := NewRedis[note](client, "test-"+uuid.NewString(), noteSchema(), clock.NewFake(epoch))
	require.NoError(t, err)

	saved, err := c.Insert(ctx, &note{Title: strPtr("a")})
	require.NoError(t, err)

	require.NoError(t, client.Del(ctx, c.idsKey()).Err())
	require.NoError(t, client.Set(ctx, c.idsKey(), "not-a-set", 0).Err())

	require.Error(t, c.DeleteByID(ctx, saved.ID))
	got, err := c.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", *got.Title)
}
