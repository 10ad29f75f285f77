package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Iterations != defaultIterations {
		t.Errorf("expected %d iterations, got %d", defaultIterations, cfg.Iterations)
	}
	if cfg.Workers <= 0 {
		t.Errorf("workers must be positive, got %d", cfg.Workers)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOSEG_ITERATIONS", "1234")
	t.Setenv("GOSEG_SEED", "-7")
	t.Setenv("GOSEG_WORKERS", "not-a-number")

	cfg := Load()
	if cfg.Iterations != 1234 {
		t.Errorf("expected 1234, got %d", cfg.Iterations)
	}
	if cfg.Seed != -7 {
		t.Errorf("expected seed -7, got %d", cfg.Seed)
	}
	if cfg.Workers <= 0 {
		t.Errorf("invalid worker override must fall back, got %d", cfg.Workers)
	}
}
