// Package config loads keymap profile documents from disk.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ebayerle/dk61ctl/kemove"
)

// Load reads a keymap profile. JSON is the native format; YAML and TOML
// come for free since viper does the parsing. Viper lower-cases every map
// key, which is fine: the core resolves all names case-insensitively.
func Load(path string) (*kemove.Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read keymap %s: %w", path, err)
	}

	var profile kemove.Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("parse keymap %s: %w", path, err)
	}
	return &profile, nil
}
