package config

import (
	"strings"
	"testing"

	"github.com/decker502/herbscape/pkg/embedded"
	"github.com/decker502/herbscape/pkg/types"
)

const validEnvironmentYAML = `
default: mint
environments:
  - slug: mint
    name: Mint
    primary: "#0b2e1a"
    secondary: "#1a4d3a"
    accent: "#6ee7b7"
    particleColor: "rgba(110, 231, 183, 0.15)"
    mood: "Cool, fresh"
    animationType: mist
  - slug: basil
    name: Basil
    primary: "#2d1a0b"
    secondary: "#4a3520"
    particleColor: "rgba(212, 165, 116, 0.12)"
    mood: "Warm, earthy"
    animationType: leafSway
`

// TestLoadEnvironmentConfig_RealFile 加载仓库自带的环境配置文件
func TestLoadEnvironmentConfig_RealFile(t *testing.T) {
	embedded.Reset()

	cfg, err := LoadEnvironmentConfig("../../data/environments.yaml")
	if err != nil {
		t.Fatalf("Failed to load environments: %v", err)
	}

	if len(cfg.Environments) != 6 {
		t.Errorf("Expected 6 environments, got %d", len(cfg.Environments))
	}

	// 每种动画风格至少出现一次
	styles := make(map[types.AnimationStyle]bool)
	for _, env := range cfg.Environments {
		styles[env.AnimationType] = true
	}
	for _, s := range types.AllAnimationStyles() {
		if !styles[s] {
			t.Errorf("Style %q not used by any environment", s)
		}
	}

	def := cfg.DefaultEnvironment()
	if def == nil || def.Slug != "mint" {
		t.Errorf("Expected default environment mint, got %+v", def)
	}
}

// TestParseEnvironmentConfig_Valid 测试正常解析与查找
func TestParseEnvironmentConfig_Valid(t *testing.T) {
	cfg, err := ParseEnvironmentConfig([]byte(validEnvironmentYAML))
	if err != nil {
		t.Fatalf("ParseEnvironmentConfig failed: %v", err)
	}

	basil := cfg.Find("basil")
	if basil == nil {
		t.Fatal("Find(basil) returned nil")
	}
	if basil.AnimationType != types.StyleLeafSway {
		t.Errorf("basil.AnimationType = %q, want leafSway", basil.AnimationType)
	}
	if basil.Mood != "Warm, earthy" {
		t.Errorf("basil.Mood = %q", basil.Mood)
	}

	if cfg.Find("sage") != nil {
		t.Error("Find(sage) should return nil")
	}
	if cfg.At(0) == nil || cfg.At(0).Slug != "mint" {
		t.Error("At(0) should be mint")
	}
	if cfg.At(2) != nil || cfg.At(-1) != nil {
		t.Error("At() out of range should return nil")
	}
}

// TestEnvironmentConfig_Validate 测试各类非法配置
func TestEnvironmentConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(yaml string) string
		wantErr string
	}{
		{
			name:    "未知动画风格",
			mutate:  func(y string) string { return strings.Replace(y, "animationType: mist", "animationType: snow", 1) },
			wantErr: "unknown animationType",
		},
		{
			name:    "重复 slug",
			mutate:  func(y string) string { return strings.Replace(y, "slug: basil", "slug: mint", 1) },
			wantErr: "duplicate slug",
		},
		{
			name:    "非法颜色",
			mutate:  func(y string) string { return strings.Replace(y, `"#2d1a0b"`, `"not-a-color"`, 1) },
			wantErr: "primary",
		},
		{
			name:    "默认环境不存在",
			mutate:  func(y string) string { return strings.Replace(y, "default: mint", "default: sage", 1) },
			wantErr: "default environment",
		},
		{
			name:    "空 slug",
			mutate:  func(y string) string { return strings.Replace(y, "slug: basil", `slug: ""`, 1) },
			wantErr: "empty slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvironmentConfig([]byte(tt.mutate(validEnvironmentYAML)))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestParseEnvironmentConfig_Empty 空列表视为错误
func TestParseEnvironmentConfig_Empty(t *testing.T) {
	if _, err := ParseEnvironmentConfig([]byte("environments: []\n")); err == nil {
		t.Error("Expected error for empty environment list")
	}
	if _, err := ParseEnvironmentConfig([]byte("environments: [")); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
