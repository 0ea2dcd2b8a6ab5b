package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/spf13/pflag"

	"github.com/EgorLis/mcstatusbot/internal/bot"
	"github.com/EgorLis/mcstatusbot/internal/dsclient"
	"github.com/EgorLis/mcstatusbot/internal/logging"
	"github.com/EgorLis/mcstatusbot/internal/mcapi"
)

var version = "dev"

// versionString: при go install без -ldflags берём ревизию из build info.
func versionString() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return version
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if dirty {
		rev += "-dirty"
	}
	return version + "+" + rev
}

func main() {
	var (
		confPath    string
		debug       bool
		showVersion bool
	)
	pflag.StringVarP(&confPath, "config", "c", "conf/mcstatusbot.yaml", "path to YAML config")
	pflag.BoolVar(&debug, "debug", false, "force debug logging")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Println("mcstatusbot", versionString())
		return
	}

	cfg, err := bot.LoadConfig(confPath)
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		log.Fatal("logger", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "path", confPath, "err", err)
	}

	channelID, _ := dsclient.ParseChannelID(cfg.Discord.ChannelID) // уже проверено в Validate

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	ds := dsclient.New(cfg.Discord.Token, channelID, logger.WithPrefix("discord"))
	sb := bot.New(cfg, mcapi.NewClientFromConf(cfg.Server), ds, logger.WithPrefix("bot"))

	router := ds.NewRouter()
	sb.AddCommands(router)

	var registerOnce sync.Once
	ds.OnConnecting = func() { logger.Info("connecting to discord…") }
	ds.OnReady = func(me discord.User) {
		logger.Info("logged in", "as", me.Tag())

		registerOnce.Do(func() {
			go func() {
				defer logging.Recover(logger, "register commands")
				if err := ds.RegisterCommands(router, bot.Commands); err != nil {
					logger.Error("register commands", "err", err)
				}
			}()
		})

		// повторные READY Start сам проигнорирует
		go func() {
			defer logging.Recover(logger, "start polling")
			sb.Start(ctx)
		}()
	}

	if err := ds.Connect(ctx); err != nil {
		logger.Fatal("discord connect", "err", err)
	}

	logger.Info("running… press Ctrl+C to stop")
	<-ctx.Done()

	logger.Info("shutting down")
	sb.Stop()
	ds.Disconnect()
}
