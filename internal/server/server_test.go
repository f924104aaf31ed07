package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/jecs/internal/core/system"
	"github.com/zeusync/jecs/internal/server"
	"github.com/zeusync/jecs/internal/todo"
	"github.com/zeusync/jecs/sdk/go/client"
)

func startServer(t *testing.T, cfg server.Config) (string, *server.Server) {
	t.Helper()
	app, err := todo.New(system.NewEngine(), todo.NewMemoryView())
	require.NoError(t, err)

	srv := server.NewServer(cfg, app, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return "ws://" + ln.Addr().String() + "/ws", srv
}

func dial(t *testing.T, url, token string) *client.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := client.Dial(ctx, url, token)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCommandsProduceSnapshots(t *testing.T) {
	url, _ := startServer(t, server.Config{})
	c := dial(t, url, "")

	initial, err := c.Next()
	require.NoError(t, err)
	assert.Empty(t, initial.Items)

	frame, err := c.Do(client.Command{Op: server.OpAdd, Title: "write tests"})
	require.NoError(t, err)
	require.Len(t, frame.Items, 1)
	assert.Equal(t, "write tests", frame.Items[0].Title)
	assert.Equal(t, 1, frame.State.ActiveTodoCount)

	frame, err = c.Do(client.Command{Op: server.OpToggle, ID: frame.Items[0].ID})
	require.NoError(t, err)
	assert.True(t, frame.Items[0].Completed)
	assert.Equal(t, 1, frame.Footer.CompletedTodos)

	frame, err = c.Do(client.Command{Op: server.OpClear})
	require.NoError(t, err)
	assert.Empty(t, frame.Items)
	assert.False(t, frame.Footer.Visible)
}

func TestCommandErrorsGoToSender(t *testing.T) {
	url, _ := startServer(t, server.Config{})
	c := dial(t, url, "")
	_, err := c.Next()
	require.NoError(t, err)

	frame, err := c.Do(client.Command{Op: "explode"})
	assert.ErrorIs(t, err, client.ErrRemote)
	assert.Contains(t, frame.Error, "unknown command op")

	_, err = c.Do(client.Command{Op: server.OpToggle, ID: "missing"})
	assert.ErrorIs(t, err, client.ErrRemote)

	_, err = c.Do(client.Command{Op: server.OpFilter, Filter: "someday"})
	assert.ErrorIs(t, err, client.ErrRemote)

	frame, err = c.Do(client.Command{Op: server.OpSync})
	require.NoError(t, err)
	assert.Empty(t, frame.Items)
}

func TestChangesAreBroadcast(t *testing.T) {
	url, srv := startServer(t, server.Config{})
	first := dial(t, url, "")
	_, err := first.Next()
	require.NoError(t, err)

	second := dial(t, url, "")
	_, err = second.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, srv.GetStats().ClientCount)

	require.NoError(t, first.Send(client.Command{Op: server.OpAdd, Title: "shared"}))
	for _, c := range []*client.Client{first, second} {
		frame, err := c.Next()
		require.NoError(t, err)
		require.Len(t, frame.Items, 1)
		assert.Equal(t, "shared", frame.Items[0].Title)
	}
}

func TestTokenIsRequiredWhenConfigured(t *testing.T) {
	url, _ := startServer(t, server.Config{Token: "s3cret"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := client.Dial(ctx, url, "wrong")
	assert.ErrorIs(t, err, server.ErrUnauthorized)

	c := dial(t, url, "s3cret")
	_, err = c.Next()
	assert.NoError(t, err)
}
