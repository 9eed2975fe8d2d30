package service

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/meschbach/formrelay/internal/junk/systest"
	"github.com/meschbach/formrelay/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())
	return address
}

func TestServe(t *testing.T) {
	root := t.TempDir()
	assets := filepath.Join(root, "front-init")
	require.NoError(t, os.MkdirAll(assets, 0o755))
	for _, name := range []string{"index.html", "message.html", "error.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(assets, name), []byte("<p>"+name+"</p>"), 0o644))
	}

	relayAddress := freeAddress(t)
	cfg := DefaultConfig()
	cfg.Web.Address = freeAddress(t)
	cfg.Web.StaticRoot = root
	cfg.Web.AssetRoot = assets
	cfg.Web.RelayAddress = relayAddress
	cfg.Relay.Address = relayAddress
	cfg.Storage.Path = filepath.Join(assets, "storage", "data.json")

	ctx, cancel := context.WithCancel(systest.TraceTest(t, 30*time.Second))
	t.Cleanup(cancel)
	served := make(chan error, 1)
	go func() {
		served <- Serve(ctx, cfg)
	}()

	base := "http://" + cfg.Web.Address
	require.Eventually(t, func() bool {
		response, err := http.Get(base + "/ops/liveness")
		if err != nil {
			return false
		}
		_ = response.Body.Close()
		return response.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	t.Run("When submitting the message form", func(t *testing.T) {
		client := &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		response, err := client.Post(base+"/message.html", "application/x-www-form-urlencoded", strings.NewReader("name=Ann&msg=Hi"))
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, response.Body)
		require.NoError(t, response.Body.Close())
		assert.Equal(t, http.StatusFound, response.StatusCode)
		assert.Equal(t, "/", response.Header.Get("Location"))

		store := records.NewFileStore(cfg.Storage.Path)
		assert.Eventually(t, func() bool {
			doc, err := store.List(ctx)
			return err == nil && len(doc) == 1
		}, 2*time.Second, 10*time.Millisecond)
	})

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestServeBindFailure(t *testing.T) {
	t.Run("Given the web address is already taken", func(t *testing.T) {
		occupied, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		t.Cleanup(func() { _ = occupied.Close() })

		root := t.TempDir()
		cfg := DefaultConfig()
		cfg.Web.Address = occupied.Addr().String()
		cfg.Web.StaticRoot = root
		cfg.Web.AssetRoot = root
		cfg.Relay.Address = freeAddress(t)
		cfg.Web.RelayAddress = cfg.Relay.Address
		cfg.Storage.Path = filepath.Join(root, "data.json")

		ctx := systest.TraceTest(t, 30*time.Second)
		served := make(chan error, 1)
		go func() {
			served <- Serve(ctx, cfg)
		}()

		select {
		case err := <-served:
			assert.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("service kept running without its web listener")
		}
	})
}
