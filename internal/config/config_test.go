package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultPuzzlerConfig()
	if err := yaml.Unmarshal(defaultPuzzlerYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultPuzzlerConfig() {
		t.Errorf("embedded defaults drifted from DefaultPuzzlerConfig:\n got %+v\nwant %+v", cfg, DefaultPuzzlerConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  width: 7\ntiming:\n  phase: 1.5s\nopponent:\n  delay_min: 1s\n  delay_max: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Width != 7 {
		t.Errorf("Board.Width = %d, expected 7", cfg.Board.Width)
	}
	if cfg.Board.Height != 5 {
		t.Errorf("Board.Height = %d, expected default 5", cfg.Board.Height)
	}
	if cfg.Timing.Phase != 1500*time.Millisecond {
		t.Errorf("Timing.Phase = %s, expected 1.5s", cfg.Timing.Phase)
	}
	if cfg.Opponent.DelayMax != 2*time.Second {
		t.Errorf("Opponent.DelayMax = %s, expected 2s", cfg.Opponent.DelayMax)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  width: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "at least 3x3") {
		t.Errorf("Load() error = %v, expected a size complaint", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PuzzlerConfig)
		wantErr string
	}{
		{"defaults", func(*PuzzlerConfig) {}, ""},
		{"narrow board", func(c *PuzzlerConfig) { c.Board.Width = 2 }, "at least 3x3"},
		{"negative delay", func(c *PuzzlerConfig) { c.Timing.Cascade = -time.Second }, "timing.cascade"},
		{"inverted opponent delay", func(c *PuzzlerConfig) { c.Opponent.DelayMin = 5 * time.Second }, "exceeds delay_max"},
		{"negative depth", func(c *PuzzlerConfig) { c.Search.CascadeDepth = -1 }, "cascade_depth"},
		{"no reshuffles", func(c *PuzzlerConfig) { c.Board.MaxReshuffles = 0 }, "max_reshuffles"},
		{"mana above max", func(c *PuzzlerConfig) { c.Player.StartMana = 50 }, "start_mana"},
		{"shrink below 3", func(c *PuzzlerConfig) { c.Shrink.Every = 2; c.Shrink.MinSize = 2 }, "min_size"},
		{"min size unset", func(c *PuzzlerConfig) { c.Shrink.Every = 0; c.Shrink.MinSize = 0 }, "min_size"},
		{"reduction above 1", func(c *PuzzlerConfig) { c.Pressure.DelayReduction = 1.5 }, "delay_reduction"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPuzzlerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()

			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %v, expected it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultPuzzlerConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Player.Lives != 5 || easy.Search.CascadeDepth != 1 {
		t.Errorf("easy preset not applied: %+v", easy)
	}

	hard := DefaultPuzzlerConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Player.Lives != 2 || !hard.Pressure.Enabled {
		t.Errorf("hard preset not applied: %+v", hard)
	}

	normal := DefaultPuzzlerConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultPuzzlerConfig() {
		t.Error("normal preset should not change the config")
	}

	for _, cfg := range []PuzzlerConfig{easy, hard} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset produced an invalid config: %v", err)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
