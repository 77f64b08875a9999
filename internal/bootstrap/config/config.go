package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Counter  CounterConfig  `mapstructure:"counter"`
	Cleanup  CleanupConfig  `mapstructure:"cleanup"`
	Ops      OpsConfig      `mapstructure:"ops"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type DiscordConfig struct {
	Token   string `mapstructure:"token"`
	AppID   string `mapstructure:"app_id"`
	GuildID string `mapstructure:"guild_id"`

	// TargetChannelID receives rendered diplomas, ReportsChannelID receives
	// rendered operation reports.
	TargetChannelID  string `mapstructure:"target_channel_id"`
	ReportsChannelID string `mapstructure:"reports_channel_id"`

	// RestrictReportChannel rejects /op_report outside ReportsChannelID.
	RestrictReportChannel bool `mapstructure:"restrict_report_channel"`
}

type AssetsConfig struct {
	Dir      string `mapstructure:"dir"`
	FontFile string `mapstructure:"font_file"`
}

type CounterConfig struct {
	File string `mapstructure:"file"`
}

type CleanupConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	ChannelID string        `mapstructure:"channel_id"`
	Interval  time.Duration `mapstructure:"interval"`
}

type OpsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ZVIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("cleanup_enabled", cfg.Cleanup.Enabled),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "zvitbot")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "reports.db")
	v.SetDefault("assets.dir", "assets")
	v.SetDefault("assets.font_file", "LTDiploma.otf")
	v.SetDefault("counter.file", "counter.json")
	v.SetDefault("cleanup.enabled", false)
	v.SetDefault("cleanup.interval", 5*time.Minute)
	v.SetDefault("discord.restrict_report_channel", false)
}
