// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = ".avlplay.yaml"

type GameConfig struct {
	MinValue    int           `yaml:"min_value"`
	MaxValue    int           `yaml:"max_value"`
	MaxNodes    int           `yaml:"max_nodes"`
	AddInterval time.Duration `yaml:"add_interval"`
	AutoBalance bool          `yaml:"auto_balance"`
}

type DisplayConfig struct {
	NegateBalance bool `yaml:"negate_balance"` // show height(right)-height(left) instead
	ShowHeights   bool `yaml:"show_heights"`
}

type Config struct {
	Game    GameConfig    `yaml:"game"`
	Display DisplayConfig `yaml:"display"`
}

func defaultConfig() Config {
	return Config{
		Game: GameConfig{
			MinValue:    1,
			MaxValue:    100,
			MaxNodes:    8,
			AddInterval: 2 * time.Second,
			AutoBalance: false,
		},
	}
}

// Validate rejects settings the key generator and game loop cannot honour.
func (c *Config) Validate() error {
	if c.Game.MinValue > c.Game.MaxValue {
		return fmt.Errorf("min_value %d is greater than max_value %d", c.Game.MinValue, c.Game.MaxValue)
	}
	if _, err := keySpan(c.Game.MinValue, c.Game.MaxValue); err != nil {
		return err
	}
	if c.Game.MaxNodes < 0 {
		return fmt.Errorf("max_nodes must not be negative, got %d", c.Game.MaxNodes)
	}
	if c.Game.AddInterval <= 0 {
		return fmt.Errorf("add_interval must be positive, got %s", c.Game.AddInterval)
	}
	return nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the config at path, or at ~/.avlplay.yaml when path is
// empty. A missing file yields the defaults. A file that cannot be parsed
// also yields the defaults, together with the error so the caller can
// report it.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return &config, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &config, nil
	}
	if err != nil {
		return &config, fmt.Errorf("failed to read config %s: %v", path, err)
	}

	// Unmarshal over the defaults so absent keys keep their default value.
	parsed := defaultConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return &config, fmt.Errorf("failed to parse config %s: %v", path, err)
	}
	if err := parsed.Validate(); err != nil {
		return &config, fmt.Errorf("invalid config %s: %v", path, err)
	}
	return &parsed, nil
}

func writeConfigFile(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}

func displaySettings(path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %v", err)
		}
		path = p
	}

	configExists := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("📝 Configuration file not found. Creating default configuration...\n\n")

		def := defaultConfig()
		if err := writeConfigFile(path, &def); err != nil {
			return err
		}
		fmt.Printf("✅ Created default configuration at: %s\n\n", path)
	}

	config, err := LoadConfig(path)
	if err != nil {
		fmt.Printf("%s⚠ %v%s\n\n", Warning, err, Reset)
	}

	fmt.Printf("🔧 avlplay Configuration Settings\n")
	fmt.Printf("═══════════════════════════════════\n\n")

	if configExists {
		fmt.Printf("📍 Config file: %s%s%s\n", Info, path, Reset)
	} else {
		fmt.Printf("📍 Config file: %s%s%s (newly created)\n", Info, path, Reset)
	}

	fmt.Printf("\n🌳 %sGame:%s\n", Green, Reset)
	fmt.Printf("  • %smin_value%s: %d\n", Green, Reset, config.Game.MinValue)
	fmt.Printf("  • %smax_value%s: %d\n", Green, Reset, config.Game.MaxValue)
	fmt.Printf("  • %smax_nodes%s: %d\n", Green, Reset, config.Game.MaxNodes)
	fmt.Printf("  • %sadd_interval%s: %s\n", Green, Reset, config.Game.AddInterval)
	fmt.Printf("  • %sauto_balance%s: %t\n", Green, Reset, config.Game.AutoBalance)
	if !config.Game.AutoBalance {
		fmt.Printf("    Nodes are inserted without rotations; press 'b' to balance.\n")
	}

	fmt.Printf("\n🎨 %sDisplay:%s\n", Green, Reset)
	fmt.Printf("  • %snegate_balance%s: %t\n", Green, Reset, config.Display.NegateBalance)
	fmt.Printf("  • %sshow_heights%s: %t\n\n", Green, Reset, config.Display.ShowHeights)
	return nil
}
