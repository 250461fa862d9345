package config

import (
	"time"

	"tokenservice/core"

	configUtil "github.com/fox-one/pkg/config"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultDeadline       = 600 * time.Second
	defaultNative         = "ETH"
	defaultWrapped        = "WETH"
)

// Load load config file, env TOKENSERVICE_* overrides the file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("TOKENSERVICE")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(cfg *core.Config) {
	if cfg.Chain.RequestTimeout <= 0 {
		cfg.Chain.RequestTimeout = defaultRequestTimeout
	}

	if cfg.Router.Deadline <= 0 {
		cfg.Router.Deadline = defaultDeadline
	}

	if cfg.Assets.Native == "" {
		cfg.Assets.Native = defaultNative
	}

	if cfg.Assets.Wrapped == "" {
		cfg.Assets.Wrapped = defaultWrapped
	}
}
