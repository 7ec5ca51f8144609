package conf

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"github.com/stubborn-gaga-0805/cibuild/consts"
	"os"
	"strings"
)

var defaultTargets = []map[string]interface{}{
	{"triple": "x86_64-unknown-linux-gnu", "extension": "tar.gz", "platformName": "linux64", "addLib": true},
	{"triple": "x86_64-pc-windows-msvc", "extension": "zip", "platformName": "win64", "addLib": false},
	{"triple": "x86_64-apple-darwin", "extension": "tar.gz", "platformName": "osx64", "addLib": false},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ci.tagVariable", consts.DefaultTagVariable)
	v.SetDefault("ci.nonTagValue", consts.DefaultNonTagValue)
	v.SetDefault("ci.printEnv", true)
	v.SetDefault("ci.maskPatterns", []string{"TOKEN", "SECRET", "PASSWORD", "API_KEY"})

	v.SetDefault("cargo.command", "cargo")
	v.SetDefault("cargo.features", []string{"prod"})
	v.SetDefault("cargo.target", "x86_64-pc-windows-msvc")
	v.SetDefault("cargo.workDir", ".")
	v.SetDefault("cargo.extraArgs", []string{})

	v.SetDefault("product.name", "dose-response")
	v.SetDefault("product.displayName", "Dose Response")
	v.SetDefault("product.repository", "tryjumping/dose-response")

	v.SetDefault("repackage.baseURL", "")
	v.SetDefault("repackage.targets", defaultTargets)
}

// Default returns the built-in configuration without reading any file or environment.
func Default() *App {
	v := viper.New()
	setDefaults(v)
	cfg := new(App)
	if err := v.Unmarshal(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load 读取配置文件和环境变量, 文件不存在时只使用默认值
func Load(path string) (*App, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(consts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(path) > 0 {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := new(App)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	ErrMissingTagVariable = errors.New("ci.tagVariable must not be empty")
	ErrMissingCommand     = errors.New("cargo.command must not be empty")
)

func (a *App) Validate() error {
	if len(strings.TrimSpace(a.CI.TagVariable)) == 0 {
		return ErrMissingTagVariable
	}
	if len(strings.TrimSpace(a.Cargo.Command)) == 0 {
		return ErrMissingCommand
	}
	for i, t := range a.Repackage.Targets {
		if len(t.Triple) == 0 {
			return fmt.Errorf("repackage.targets[%d]: triple must not be empty", i)
		}
	}
	return nil
}
