package dsclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
)

type DiscordConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

type Client struct {
	st        *state.State
	channelID discord.ChannelID
	log       *log.Logger

	// "События"
	OnConnecting func()
	OnReady      func(me discord.User)
	OnResumed    func()
}

// New — клиент поверх arikawa state. Токен можно передать как с префиксом "Bot ", так и без.
func New(token string, channelID discord.ChannelID, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}

	c := &Client{
		st:        state.New(token),
		channelID: channelID,
		log:       logger,
	}

	// кэш нам почти не нужен: только гильдии/каналы
	c.st.AddIntents(gateway.IntentGuilds)

	c.st.AddHandler(func(r *gateway.ReadyEvent) {
		if c.OnReady != nil {
			c.OnReady(r.User)
		}
	})
	c.st.AddHandler(func(*gateway.ResumedEvent) {
		c.log.Debug("gateway resumed")
		if c.OnResumed != nil {
			c.OnResumed()
		}
	})
	return c
}

// ParseChannelID — id канала из конфига.
func ParseChannelID(s string) (discord.ChannelID, error) {
	sf, err := discord.ParseSnowflake(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("dsclient: channel id %q: %w", s, err)
	}
	if !sf.IsValid() {
		return 0, errors.New("dsclient: channel id is empty")
	}
	return discord.ChannelID(sf), nil
}

// Connect открывает gateway. Ошибка тут (например, неверный токен) — фатальна для процесса.
func (c *Client) Connect(ctx context.Context) error {
	if c.OnConnecting != nil {
		c.OnConnecting()
	}
	if err := c.st.Open(ctx); err != nil {
		return fmt.Errorf("dsclient: open gateway: %w", err)
	}
	return nil
}

func (c *Client) Disconnect() {
	if err := c.st.Close(); err != nil {
		c.log.Warn("close gateway", "err", err)
	}
}

// State — доступ к arikawa для того, чего тут нет.
func (c *Client) State() *state.State {
	return c.st
}
