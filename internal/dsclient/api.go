package dsclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/httputil"

	"github.com/EgorLis/mcstatusbot/internal/tracker"
)

// ========================= high-level API  =========================

// коды ошибок Discord API, при которых сообщение считаем пропавшим
const (
	codeUnknownChannel = 10003
	codeUnknownMessage = 10008
)

// Channel — найденный канал; реализует tracker.Channel.
type Channel struct {
	st *state.State
	id discord.ChannelID
}

var _ tracker.Channel = (*Channel)(nil)

// ResolveChannel находит целевой канал. Ошибка = цикл прерывается до опроса сервера.
func (c *Client) ResolveChannel(ctx context.Context) (tracker.Channel, error) {
	ch, err := c.st.WithContext(ctx).Channel(c.channelID)
	if err != nil {
		return nil, fmt.Errorf("dsclient: channel %v: %w", c.channelID, err)
	}
	return &Channel{st: c.st, id: ch.ID}, nil
}

func (ch *Channel) Send(ctx context.Context, embed discord.Embed) (discord.MessageID, error) {
	m, err := ch.st.WithContext(ctx).SendEmbeds(ch.id, embed)
	if err != nil {
		return 0, fmt.Errorf("dsclient: send: %w", err)
	}
	return m.ID, nil
}

func (ch *Channel) Edit(ctx context.Context, id discord.MessageID, embed discord.Embed) error {
	s := ch.st.WithContext(ctx)
	if _, err := s.Message(ch.id, id); err != nil {
		return classify("fetch message", err)
	}
	if _, err := s.EditEmbeds(ch.id, id, embed); err != nil {
		return classify("edit message", err)
	}
	return nil
}

// SetPresence — "Watching <activity>". Идемпотентно на стороне Discord.
func (c *Client) SetPresence(ctx context.Context, activity string) error {
	err := c.st.SendGateway(ctx, &gateway.UpdatePresenceCommand{
		Status: discord.OnlineStatus,
		Activities: []discord.Activity{{
			Name: activity,
			Type: discord.WatchingActivity,
		}},
	})
	if err != nil {
		return fmt.Errorf("dsclient: presence: %w", err)
	}
	return nil
}

// classify оборачивает 404/Unknown Message в tracker.ErrNotFound.
func classify(op string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("dsclient: %s: %w: %w", op, tracker.ErrNotFound, err)
	}
	return fmt.Errorf("dsclient: %s: %w", op, err)
}

func isNotFound(err error) bool {
	var herr *httputil.HTTPError
	if !errors.As(err, &herr) {
		return false
	}
	switch {
	case herr.Status == http.StatusNotFound:
		return true
	case herr.Code == codeUnknownMessage, herr.Code == codeUnknownChannel:
		return true
	}
	return false
}
