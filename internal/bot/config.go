package bot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/EgorLis/mcstatusbot/internal/dsclient"
	"github.com/EgorLis/mcstatusbot/internal/mcapi"
)

// TokenEnv — переменная окружения с токеном, перекрывает discord.token из файла.
const TokenEnv = "DISCORD_TOKEN"

// cron.Every считает в целых секундах (дробная часть отбрасывается),
// поэтому интервал — не меньше секунды и кратен ей
const minInterval = time.Second

type PollConf struct {
	Interval time.Duration `yaml:"interval"`
}

type LogConf struct {
	Level string `yaml:"level"`
}

type BotConfig struct {
	Server  mcapi.Conf             `yaml:"server"`
	Discord dsclient.DiscordConfig `yaml:"discord"`
	Poll    PollConf               `yaml:"poll"`
	Log     LogConf                `yaml:"log"`
}

func Defaults() BotConfig {
	return BotConfig{
		Server: mcapi.Conf{
			Address: mcapi.Address{Port: 25565},
			APIURL:  mcapi.DefaultBaseURL,
			Timeout: mcapi.DefaultTimeout,
		},
		Poll: PollConf{Interval: 6 * time.Second},
		Log:  LogConf{Level: "info"},
	}
}

// LoadConfig читает YAML, доливает дефолты и токен из окружения.
// Если файла нет — создаём шаблон с дефолтами (его потом заполняют руками),
// а сами продолжаем: всё нужное может прийти из окружения.
// Конфиг читается один раз и дальше не меняется.
func LoadConfig(path string) (BotConfig, error) {
	var cfg BotConfig

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return BotConfig{}, fmt.Errorf("config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if err := writeTemplate(path); err != nil {
			return BotConfig{}, err
		}
	default:
		return BotConfig{}, fmt.Errorf("config %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return BotConfig{}, fmt.Errorf("config defaults: %w", err)
	}
	if tok := strings.TrimSpace(os.Getenv(TokenEnv)); tok != "" {
		cfg.Discord.Token = tok
	}
	return cfg, nil
}

func writeTemplate(path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	b, err := yaml.Marshal(Defaults())
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate собирает все проблемы сразу, чтобы не чинить конфиг по одной строке.
func (c BotConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Host) == "" {
		errs = append(errs, errors.New("server.host is required"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, errors.New("server.timeout must be > 0"))
	}
	if c.Discord.Token == "" {
		errs = append(errs, fmt.Errorf("discord.token is required (or set $%s)", TokenEnv))
	}
	if _, err := dsclient.ParseChannelID(c.Discord.ChannelID); err != nil {
		errs = append(errs, fmt.Errorf("discord.channel_id: %w", err))
	}
	if c.Poll.Interval < minInterval {
		errs = append(errs, fmt.Errorf("poll.interval must be >= %v", minInterval))
	} else if c.Poll.Interval%time.Second != 0 {
		errs = append(errs, fmt.Errorf("poll.interval %v must be a whole number of seconds", c.Poll.Interval))
	}
	return errors.Join(errs...)
}
