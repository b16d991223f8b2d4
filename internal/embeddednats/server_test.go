package embeddednats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerLifecycle(t *testing.T) {
	srv, err := New()
	require.NoError(t, err)
	srv.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, srv.Ready(ctx))

	assert.True(t, strings.HasPrefix(srv.ClientURL(), "nats://"))
	assert.NotZero(t, srv.Port())

	nc, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	nc.Close()

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	require.NoError(t, srv.Shutdown(sctx))
}
