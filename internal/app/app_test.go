package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-live-league/internal/config"
	"github.com/riskibarqy/fpl-live-league/internal/platform/logging"
)

const testLeagues = `
leagues:
  - id: elite
    name: Elite
    type: h2h
    fpl_league_id: 818
`

func memoryConfig(t *testing.T) config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leagues.yaml")
	if err := os.WriteFile(path, []byte(testLeagues), 0o600); err != nil {
		t.Fatalf("write leagues file: %v", err)
	}
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		LeaguesFile:        path,
		FPLTimeout:         time.Second,
		FPLMaxWorkers:      4,
		RefreshEnabled:     true,
		RefreshInterval:    time.Minute,
	}
}

func TestNew_MemoryStack(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), memoryConfig(t), logging.NewNop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if application.Server == nil || application.Server.Handler == nil {
		t.Fatalf("expected http server with router")
	}
	if application.Scheduler == nil {
		t.Fatalf("expected refresh scheduler when enabled")
	}
	if err := application.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	missing := memoryConfig(t)
	missing.LeaguesFile = filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := New(context.Background(), missing, nil); err == nil {
		t.Fatalf("expected error for missing leagues file")
	}

	noAddr := memoryConfig(t)
	noAddr.HTTPAddr = ""
	if _, err := New(context.Background(), noAddr, nil); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestApp_CloseRunsInReverseAndJoinsErrors(t *testing.T) {
	t.Parallel()

	var order []int
	boom := errors.New("boom")
	a := &App{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return boom },
	}}

	if err := a.Close(); !errors.Is(err, boom) {
		t.Fatalf("Close error got=%v want=boom", err)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("close order got=%v want=[2 1]", order)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close got=%v want=nil", err)
	}
}
