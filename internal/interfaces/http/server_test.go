package http

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

func TestNewServer_UsesConfig(t *testing.T) {
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 18080, ReadTimeout: time.Second, WriteTimeout: 2 * time.Second}
	s := NewServer(cfg, http.NewServeMux(), logging.NewNopLogger())

	assert.Equal(t, "127.0.0.1:18080", s.Addr())
	assert.Equal(t, time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, s.srv.WriteTimeout)
}

func TestServer_ServeAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("pong")) })
	s := NewServer(config.ServerConfig{ShutdownTimeout: time.Second}, mux, logging.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, <-done)
}

//Personal.AI order the ending
