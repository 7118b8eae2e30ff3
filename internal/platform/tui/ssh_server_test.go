package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
)

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "runs.db")

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer srv.Shutdown()

	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q, want 127.0.0.1:0", srv.Addr())
	}
	if srv.store == nil {
		t.Error("runs database was not opened")
	}
	if _, err := os.Stat(filepath.Dir(cfg.HostKeyPath)); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
}

func TestNewSSHServerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Snake.Board.CellSize = 0

	_, err := NewSSHServer(cfg)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("NewSSHServer() error = %v, want config.ErrInvalid", err)
	}
}
