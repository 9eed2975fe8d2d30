package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"
)

func TestListener(t *testing.T) {
	site := fixtureSite(t, &capturingRelay{})
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- (&Listener{Site: site, ShutdownTimeout: time.Second}).ServeListener(ctx, listener)
	}()

	response, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(response.Body)
	require.NoError(t, response.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, homeHTML, string(body))

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("web listener did not stop")
	}

	_, err = net.DialTimeout("tcp", listener.Addr().String(), 200*time.Millisecond)
	assert.Error(t, err, "the socket is closed on shutdown")
}

func TestListenerBindFailure(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = occupied.Close() })

	err = (&Listener{Address: occupied.Addr().String(), Site: &Site{}}).Serve(t.Context())
	assert.ErrorIs(t, err, suture.ErrTerminateSupervisorTree)
}
