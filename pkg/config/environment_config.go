package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/herbscape/pkg/embedded"
	"github.com/decker502/herbscape/pkg/types"
	"github.com/decker502/herbscape/pkg/utils"
)

// Environment 背景环境描述
//
// 由外部商品目录提供，选中后不可变。引擎只消费颜色与动画风格，
// Mood 仅作透传展示；Accent 供外部 UI 使用。
//
// 配置文件位置: data/environments.yaml
type Environment struct {
	// Slug 环境唯一标识（如 "mint"）
	Slug string `yaml:"slug"`

	// Name 展示名称
	Name string `yaml:"name"`

	// Primary 渐变顶部颜色
	Primary string `yaml:"primary"`

	// Secondary 渐变底部颜色
	Secondary string `yaml:"secondary"`

	// Accent UI 强调色（引擎不使用）
	Accent string `yaml:"accent"`

	// ParticleColor 粒子/薄雾颜色，可带 alpha
	ParticleColor string `yaml:"particleColor"`

	// Mood 情绪描述（引擎不使用）
	Mood string `yaml:"mood"`

	// AnimationType 动画风格标签
	AnimationType types.AnimationStyle `yaml:"animationType"`
}

// EnvironmentConfig 环境列表配置
type EnvironmentConfig struct {
	// Default 启动时默认选中的环境 slug，可为空
	Default string `yaml:"default"`

	// Environments 全部环境，按配置文件中的顺序排列
	Environments []Environment `yaml:"environments"`
}

// LoadEnvironmentConfig 加载环境配置
//
// 优先从嵌入文件系统读取，嵌入资源不可用时回退到磁盘文件。
//
// 参数:
//   - path: 配置文件路径（如 "data/environments.yaml"）
//
// 返回:
//   - *EnvironmentConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadEnvironmentConfig(path string) (*EnvironmentConfig, error) {
	var (
		data []byte
		err  error
	)
	if embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read environment config: %w", err)
	}

	cfg, err := ParseEnvironmentConfig(data)
	if err != nil {
		return nil, err
	}

	log.Printf("[Config] 加载环境配置: %s (%d 个环境)", path, len(cfg.Environments))
	return cfg, nil
}

// ParseEnvironmentConfig 从 YAML 数据解析并验证环境配置
func ParseEnvironmentConfig(data []byte) (*EnvironmentConfig, error) {
	var cfg EnvironmentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment config: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置有效性
//
// 引擎本身不校验颜色（非法颜色只会导致画面异常），
// 因此由配置层负责拦截：
//   - slug 非空且唯一
//   - 动画风格属于已知集合
//   - 所有颜色字符串可解析
//   - Default（若设置）指向存在的环境
func (c *EnvironmentConfig) Validate() error {
	if len(c.Environments) == 0 {
		return fmt.Errorf("no environments defined")
	}

	seen := make(map[string]bool, len(c.Environments))
	for i, env := range c.Environments {
		if env.Slug == "" {
			return fmt.Errorf("environment #%d: empty slug", i)
		}
		if seen[env.Slug] {
			return fmt.Errorf("environment %q: duplicate slug", env.Slug)
		}
		seen[env.Slug] = true

		if !env.AnimationType.IsValid() {
			return fmt.Errorf("environment %q: unknown animationType %q", env.Slug, env.AnimationType)
		}

		colors := map[string]string{
			"primary":   env.Primary,
			"secondary": env.Secondary,
		}
		// 粒子色与强调色可省略，省略时使用默认值
		if env.ParticleColor != "" {
			colors["particleColor"] = env.ParticleColor
		}
		if env.Accent != "" {
			colors["accent"] = env.Accent
		}
		for field, value := range colors {
			if _, err := utils.ParseColor(value); err != nil {
				return fmt.Errorf("environment %q: %s: %w", env.Slug, field, err)
			}
		}
	}

	if c.Default != "" && !seen[c.Default] {
		return fmt.Errorf("default environment %q not found", c.Default)
	}

	return nil
}

// Find 按 slug 查找环境，未找到返回 nil
func (c *EnvironmentConfig) Find(slug string) *Environment {
	for i := range c.Environments {
		if c.Environments[i].Slug == slug {
			return &c.Environments[i]
		}
	}
	return nil
}

// At 按序号（0 起）获取环境，越界返回 nil
func (c *EnvironmentConfig) At(index int) *Environment {
	if index < 0 || index >= len(c.Environments) {
		return nil
	}
	return &c.Environments[index]
}

// DefaultEnvironment 返回默认环境，未配置时返回 nil（休眠配色）
func (c *EnvironmentConfig) DefaultEnvironment() *Environment {
	if c.Default == "" {
		return nil
	}
	return c.Find(c.Default)
}
