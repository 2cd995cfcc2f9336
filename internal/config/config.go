// Package config loads solver settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hexfall/internal/route"
	"hexfall/internal/strategy"
)

// EnvPath 未指定 -config 时读取的环境变量
const EnvPath = "HEXFALL_CONFIG"

// Config 根配置
type Config struct {
	Tag     string        `yaml:"tag"`
	Phrases []string      `yaml:"phrases"`
	Weights WeightsConfig `yaml:"weights"`
	Search  SearchConfig  `yaml:"search"`
	Router  RouterConfig  `yaml:"router"`
}

type WeightsConfig struct {
	Lines int `yaml:"lines"`
	Fill  int `yaml:"fill"`
	Holes int `yaml:"holes"`
}

type SearchConfig struct {
	Margin       int   `yaml:"margin"`
	Orientations int   `yaml:"orientations"`
	Lookahead    *bool `yaml:"lookahead"`   // nil 表示默认开启
	CarryLines   bool  `yaml:"carry_lines"` // 两层分数是否加回第一层的消行奖励
}

type RouterConfig struct {
	StepCost int `yaml:"step_cost"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	on := true
	return &Config{
		Weights: WeightsConfig{
			Lines: strategy.DefaultWeights.Lines,
			Fill:  strategy.DefaultWeights.Fill,
			Holes: strategy.DefaultWeights.Holes,
		},
		Search: SearchConfig{Margin: 3, Orientations: 6, Lookahead: &on},
		Router: RouterConfig{StepCost: route.DefaultCosts.Step},
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls
// back to $HEXFALL_CONFIG; if that is empty too the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Search.Margin < 0 {
		return fmt.Errorf("search.margin %d < 0", c.Search.Margin)
	}
	if c.Search.Orientations < 1 || c.Search.Orientations > 6 {
		return fmt.Errorf("search.orientations %d not in 1..6", c.Search.Orientations)
	}
	if c.Router.StepCost < 1 {
		return fmt.Errorf("router.step_cost %d < 1", c.Router.StepCost)
	}
	return nil
}

// SearcherOptions translates the search and weight sections.
func (c *Config) SearcherOptions() []strategy.Option {
	lookahead := c.Search.Lookahead == nil || *c.Search.Lookahead
	return []strategy.Option{
		strategy.WithWeights(strategy.Weights{
			Lines: c.Weights.Lines,
			Fill:  c.Weights.Fill,
			Holes: c.Weights.Holes,
		}),
		strategy.WithMargin(c.Search.Margin),
		strategy.WithOrientations(c.Search.Orientations),
		strategy.WithLookahead(lookahead),
		strategy.WithCarryLines(c.Search.CarryLines),
	}
}

// Costs returns the router costs.
func (c *Config) Costs() route.Costs {
	return route.Costs{Step: c.Router.StepCost}
}
