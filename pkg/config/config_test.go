package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRepoConfig(t *testing.T) {
	cfg, err := Load("../../configs/contour.yaml")
	if err != nil {
		t.Fatalf("load contour.yaml: %v", err)
	}
	if cfg.ChunkResolution != 2 || cfg.VoxelResolution != 8 {
		t.Fatalf("unexpected resolutions: %d/%d", cfg.ChunkResolution, cfg.VoxelResolution)
	}
	if !cfg.Wall.Enabled {
		t.Fatalf("walls should be enabled")
	}
	x, y := cfg.Origin()
	if x != -1 || y != -1 {
		t.Fatalf("origin = (%v,%v), want centred (-1,-1)", x, y)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.MaxFeatureAngle != 135 {
		t.Fatalf("max_feature_angle = %v, want 135", cfg.MaxFeatureAngle)
	}
	if cfg.OriginX == nil || *cfg.OriginX != -1 {
		t.Fatalf("normalize should centre the map")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("size: 8\norigin_x: 0\nvoxel_resolution: 4\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	x, y := cfg.Origin()
	if x != 0 || y != -4 {
		t.Fatalf("origin = (%v,%v), want (0,-4)", x, y)
	}
	if cfg.ChunkResolution != 2 {
		t.Fatalf("chunk_resolution should keep its default")
	}
	if got := cfg.ChunkSize(); got != 4 {
		t.Fatalf("ChunkSize() = %v, want 4", got)
	}
	if got := cfg.VoxelSize(); got != 1 {
		t.Fatalf("VoxelSize() = %v, want 1", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero size", "size: 0"},
		{"no chunks", "chunk_resolution: 0"},
		{"one voxel", "voxel_resolution: 1"},
		{"angle too large", "max_feature_angle: 200"},
		{"inverted wall", "wall: {enabled: true, bottom: 1, top: 0}"},
		{"bad yaml", "size: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadWrapsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("size: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
