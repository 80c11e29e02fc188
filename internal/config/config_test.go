package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.DataDir != def.DataDir || cfg.Split.Seed != def.Split.Seed {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yaml")
	doc := "data_dir: logs/walks\nsplit:\n  seed: 7\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "logs/walks" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.Split.Seed != 7 {
		t.Errorf("seed = %d", cfg.Split.Seed)
	}
	// Unset fields keep their defaults.
	if cfg.Split.Ratio != 0.7 {
		t.Errorf("ratio = %v, want default 0.7", cfg.Split.Ratio)
	}
	if cfg.Output.Contract != "calibration.json" {
		t.Errorf("contract = %q", cfg.Output.Contract)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yaml")
	doc := `data_dir: /var/walks
split:
  ratio: 0.5
  seed: 99
calibrate:
  top_k: 3
  workers: 2
output:
  contract: out/calibration.json
  database: out/history.db
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Split.Ratio != 0.5 || cfg.Calibrate.TopK != 3 || cfg.Calibrate.Workers != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Output.Database != "out/history.db" {
		t.Errorf("database = %q", cfg.Output.Database)
	}
}

func TestLoad_RejectsBadRatio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yaml")
	if err := os.WriteFile(path, []byte("split:\n  ratio: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for ratio outside [0, 1]")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
