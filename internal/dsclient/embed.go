package dsclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/EgorLis/mcstatusbot/internal/mcapi"
)

const (
	ColorOnline  discord.Color = 0xB1F1C1
	ColorOffline discord.Color = 0xF2B8B5

	// mcsrvstat иногда отдаёт cachetime=0, тогда показываем условные 20ms
	defaultPingMs = 20
)

// RenderEmbed — карточка статуса. host попадает в поле Address, now — в футер.
func RenderEmbed(st mcapi.ServerStatus, host string, now time.Time) discord.Embed {
	e := discord.Embed{
		Title:     "🔴  Server Offline",
		Color:     ColorOffline,
		Footer:    &discord.EmbedFooter{Text: "Last Updated: " + now.Format("15:04:05")},
		Timestamp: discord.NewTimestamp(now),
	}

	players, ping := "Unreachable", "--"
	if st.Online {
		e.Title = "🟢  Server Online"
		e.Color = ColorOnline
		players = fmt.Sprintf("%s / %s", optInt(st.PlayersOnline), optInt(st.PlayersMax))

		ms := defaultPingMs
		if st.LatencyMs != nil && *st.LatencyMs != 0 {
			ms = *st.LatencyMs
		}
		ping = fmt.Sprintf("%dms", ms)

		if len(st.MOTD) > 0 {
			e.Description = "```\n" + strings.Join(st.MOTD, "\n") + "\n```"
		}
	}

	e.Fields = []discord.EmbedField{
		{Name: "👥 Players", Value: players, Inline: true},
		{Name: "📶 Ping", Value: ping, Inline: true},
		{Name: "🌐 Address", Value: host, Inline: true},
	}
	return e
}

// PresenceText — строка активности бота: "N Players" или "Offline".
func PresenceText(st mcapi.ServerStatus) string {
	if !st.Online {
		return "Offline"
	}
	if st.PlayersOnline == nil {
		return "Online"
	}
	return fmt.Sprintf("%d Players", *st.PlayersOnline)
}

func optInt(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprint(*v)
}
