package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", cfg.Workers)
	}
	if !cfg.Progress {
		t.Error("expected progress enabled by default")
	}
	if cfg.Overwrite {
		t.Error("expected overwrite disabled by default")
	}
	if cfg.Tag.Pattern != "id_(.+?)_" {
		t.Errorf("expected default tag pattern 'id_(.+?)_', got %q", cfg.Tag.Pattern)
	}
	if cfg.Tag.Dim != "exp_id" {
		t.Errorf("expected default tag dim 'exp_id', got %q", cfg.Tag.Dim)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
bucket: s3://pism-cloud-data
files:
  - inputs/grid_1000m.nc
  - inputs/climate_forcing.nc
workers: 8
overwrite: true
colormap_dir: data/colormaps
tag:
  pattern: run_(.+?)\.
  dim: run_id
  drop_vars: [time_bounds]
  drop_dims: [nv4]
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Bucket != "s3://pism-cloud-data" {
		t.Errorf("expected bucket 's3://pism-cloud-data', got %q", cfg.Bucket)
	}
	if len(cfg.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(cfg.Files))
	}
	if cfg.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Workers)
	}
	if !cfg.Overwrite {
		t.Error("expected overwrite true")
	}
	if cfg.ColormapDir != "data/colormaps" {
		t.Errorf("expected colormap_dir 'data/colormaps', got %q", cfg.ColormapDir)
	}
	if cfg.Tag.Dim != "run_id" {
		t.Errorf("expected tag dim 'run_id', got %q", cfg.Tag.Dim)
	}
	if len(cfg.Tag.DropVars) != 1 || cfg.Tag.DropVars[0] != "time_bounds" {
		t.Errorf("expected drop_vars [time_bounds], got %v", cfg.Tag.DropVars)
	}
}

func TestLoadFromYAMLKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("bucket: s3://somewhere\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Workers != 4 {
		t.Errorf("expected default workers to survive partial file, got %d", cfg.Workers)
	}
	if cfg.Tag.Pattern != "id_(.+?)_" {
		t.Errorf("expected default tag pattern to survive partial file, got %q", cfg.Tag.Pattern)
	}
	if !cfg.Progress {
		t.Error("expected default progress to survive partial file")
	}
}

func TestLoadFromYAMLDisablesProgress(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("bucket: s3://somewhere\nprogress: false\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Progress {
		t.Error("expected explicit progress: false to take effect")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GLACIERKIT_BUCKET", "gs://tutorial-inputs")
	t.Setenv("GLACIERKIT_FILES", "a.nc, b.nc,c.nc")
	t.Setenv("GLACIERKIT_WORKERS", "2")
	t.Setenv("GLACIERKIT_OVERWRITE", "true")
	t.Setenv("GLACIERKIT_TAG_DIM", "experiment")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Bucket != "gs://tutorial-inputs" {
		t.Errorf("expected bucket from env, got %q", cfg.Bucket)
	}
	if len(cfg.Files) != 3 || cfg.Files[1] != "b.nc" {
		t.Errorf("expected files [a.nc b.nc c.nc], got %v", cfg.Files)
	}
	if cfg.Workers != 2 {
		t.Errorf("expected workers 2, got %d", cfg.Workers)
	}
	if !cfg.Overwrite {
		t.Error("expected overwrite true")
	}
	if cfg.Tag.Dim != "experiment" {
		t.Errorf("expected tag dim 'experiment', got %q", cfg.Tag.Dim)
	}
}

func TestLoadFromEnvInvalidWorkers(t *testing.T) {
	t.Setenv("GLACIERKIT_WORKERS", "many")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Fatal("expected error for non-numeric GLACIERKIT_WORKERS")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Bucket = "s3://bucket"
	cfg.Files = []string{"a.nc"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Files = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty file list")
	}

	cfg = Default()
	cfg.Files = []string{"https://example.com/a.nc"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected URL-only file list to be valid without bucket, got %v", err)
	}

	cfg.Files = []string{"https://example.com/a.nc", "b.nc"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for mixed list without bucket")
	}

	cfg = Default()
	cfg.Bucket = "s3://bucket"
	cfg.Files = []string{"a.nc"}
	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero workers")
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.Bucket = "s3://base"
	base.Files = []string{"a.nc"}

	merged := base.Merge(Config{
		Workers:   16,
		Overwrite: true,
		Tag:       TagConfig{Dim: "member"},
	})

	if merged.Bucket != "s3://base" {
		t.Errorf("expected bucket preserved, got %q", merged.Bucket)
	}
	if merged.Workers != 16 {
		t.Errorf("expected workers overridden to 16, got %d", merged.Workers)
	}
	if !merged.Overwrite {
		t.Error("expected overwrite overridden")
	}
	if merged.Tag.Dim != "member" {
		t.Errorf("expected tag dim overridden, got %q", merged.Tag.Dim)
	}
	if merged.Tag.Pattern != "id_(.+?)_" {
		t.Errorf("expected tag pattern preserved, got %q", merged.Tag.Pattern)
	}
}
