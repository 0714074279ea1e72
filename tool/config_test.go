package tool

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `host: vuduo2.local
username: root
password: dreambox
use_https: true
prefer_picon: true
mac_address: "00:09:34:27:C4:64"
bouquets:
  - name: Favourites
    services:
      - name: Das Erste HD
        ref: "1:0:19:283D:3FB:1:C00000:0:0:0:"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Host != "vuduo2.local" || cfg.Username != "root" || !cfg.UseHTTPS {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Port != 80 {
		t.Errorf("Port = %d, want default 80 when omitted", cfg.Port)
	}
	if len(cfg.Bouquets) != 1 || len(cfg.Bouquets[0].Services) != 1 {
		t.Errorf("bouquet lineup not parsed: %+v", cfg.Bouquets)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for explicitly requested missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("host: [broken"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
