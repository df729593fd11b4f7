// Package config loads roi settings from defaults, an optional YAML file,
// a .env file and ROI_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/komsit37/roi/pkg/roi/animate"
	"github.com/komsit37/roi/pkg/roi/calc"
)

// EnvPrefix namespaces environment overrides: model.cpa -> ROI_MODEL_CPA.
const EnvPrefix = "ROI"

type Config struct {
	Model     calc.Model      `mapstructure:"model"`
	Defaults  calc.Inputs     `mapstructure:"defaults"`
	Animation AnimationConfig `mapstructure:"animation"`
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
}

type AnimationConfig struct {
	Frames int           `mapstructure:"frames"`
	Tick   time.Duration `mapstructure:"tick"`
	Easing string        `mapstructure:"easing"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	RateLimit       float64       `mapstructure:"rate_limit"` // requests per second per client
	Burst           int           `mapstructure:"burst"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"` // empty: in-memory cache
	Prefix    string        `mapstructure:"prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
	Size      int           `mapstructure:"size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

func setDefaults(v *viper.Viper) {
	m := calc.DefaultModel()
	v.SetDefault("model.cpa", m.CostPerAppointment)
	v.SetDefault("model.min_job_value", m.MinJobValue)
	v.SetDefault("model.max_job_value", m.MaxJobValue)
	v.SetDefault("model.curve_exponent", m.CurveExponent)
	v.SetDefault("model.min_appointments", m.MinAppointments)
	v.SetDefault("model.max_appointments", m.MaxAppointments)
	v.SetDefault("model.min_closing_rate", m.MinClosingRate)
	v.SetDefault("model.max_closing_rate", m.MaxClosingRate)

	in := calc.DefaultInputs()
	v.SetDefault("defaults.appointments", in.Appointments)
	v.SetDefault("defaults.closing_rate", in.ClosingRate)
	v.SetDefault("defaults.job_value", in.JobValue)

	a := animate.DefaultConfig()
	v.SetDefault("animation.frames", a.Frames)
	v.SetDefault("animation.tick", a.Tick)
	v.SetDefault("animation.easing", "ease-out-cubic")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.burst", 20)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.prefix", "roi:projection:")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.size", 1024)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration. An empty path searches ./roi.yaml and
// $HOME/.config/roi/roi.yaml and is fine with finding neither.
func Load(path string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("roi")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "roi"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the model and the animation settings.
func (c *Config) Validate() error {
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if _, err := animate.ParseEasing(c.Animation.Easing); err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	if c.Animation.Frames < 0 || c.Animation.Tick < 0 {
		return fmt.Errorf("animation: frames and tick must not be negative")
	}
	return nil
}

// AnimateConfig converts the animation section.
func (c *Config) AnimateConfig() animate.Config {
	ease, err := animate.ParseEasing(c.Animation.Easing)
	if err != nil {
		ease = animate.EaseOutCubic
	}
	return animate.Config{Frames: c.Animation.Frames, Tick: c.Animation.Tick, Easing: ease}
}
