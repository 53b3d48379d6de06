//go:build integration

package recordstore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"release-gateway/pkg/platform/sentinel"
	"release-gateway/pkg/testutil/containers"
)

func TestRedisStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("load missing key returns not found", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		store := NewRedisStore(rc.Client, log)

		_, err := store.Load(ctx, KeyIdentity)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		store := NewRedisStore(rc.Client, log)

		value := json.RawMessage(`{"status":"ok"}`)
		require.NoError(t, store.Save(ctx, KeyIdentity, value))

		got, err := store.Load(ctx, KeyIdentity)
		require.NoError(t, err)
		require.JSONEq(t, string(value), string(got))
	})

	t.Run("peer write arrives as external notification", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		writer := NewRedisStore(rc.Client, log)
		reader := NewRedisStore(rc.Client, log)

		listenCtx, cancelListen := context.WithCancel(ctx)
		defer cancelListen()
		go func() { _ = reader.Listen(listenCtx) }()

		// Give the subscriber a moment to attach before publishing.
		time.Sleep(200 * time.Millisecond)

		notified := make(chan Origin, 1)
		cancel := reader.Subscribe(KeyReleases, func(_ Key, origin Origin) {
			notified <- origin
		})
		defer cancel()

		require.NoError(t, writer.Save(ctx, KeyReleases, json.RawMessage(`[{"id":"REL-1"}]`)))

		select {
		case origin := <-notified:
			require.Equal(t, OriginExternal, origin)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for external change notification")
		}

		got, err := reader.Load(ctx, KeyReleases)
		require.NoError(t, err)
		require.JSONEq(t, `[{"id":"REL-1"}]`, string(got))
	})

	t.Run("writer does not receive an echo of its own publish", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		store := NewRedisStore(rc.Client, log)
		listenCtx, cancelListen := context.WithCancel(ctx)
		defer cancelListen()
		go func() { _ = store.Listen(listenCtx) }()
		time.Sleep(200 * time.Millisecond)

		origins := make(chan Origin, 2)
		cancel := store.Subscribe(KeyIdentity, func(_ Key, origin Origin) {
			origins <- origin
		})
		defer cancel()

		require.NoError(t, store.Save(ctx, KeyIdentity, json.RawMessage(`{}`)))

		// The synchronous local notification must be the only delivery.
		require.Equal(t, OriginLocal, <-origins)
		select {
		case origin := <-origins:
			t.Fatalf("unexpected second notification with origin %s", origin)
		case <-time.After(time.Second):
		}
	})
}
