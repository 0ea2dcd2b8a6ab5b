package bot

import (
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"

	"github.com/EgorLis/mcstatusbot/internal/dsclient"
)

// Commands — глобальные слэш-команды бота.
var Commands = []api.CreateCommandData{
	{Name: "status", Description: "Check status now"},
	{Name: "ip", Description: "Get Server IP"},
}

func (bot *StatusBot) AddCommands(r *cmdroute.Router) {
	r.AddFunc("status", bot.cmdStatus)
	r.AddFunc("ip", bot.cmdIP)
}

// /status — внеочередной цикл и карточка текущего статуса в ответ.
func (bot *StatusBot) cmdStatus(ctx context.Context, _ cmdroute.CommandData) *api.InteractionResponseData {
	if !bot.limiter.Allow() {
		return dsclient.EphemeralText("Status was checked a moment ago, try again in a few seconds.")
	}

	// свежим считаем только статус, полученный после этой команды
	seq := bot.fetchSeq()
	bot.sched.RunNow()

	st, ok := bot.LastStatus()
	if !ok || bot.fetchSeq() == seq {
		// планировщик не стартовал, занят, или канал не находится — спросим напрямую
		st = bot.fetcher.FetchStatus(ctx, bot.addr).Status
	}

	embed := bot.render(st)
	return &api.InteractionResponseData{
		Embeds: &[]discord.Embed{embed},
	}
}

// /ip — адрес сервера.
func (bot *StatusBot) cmdIP(_ context.Context, _ cmdroute.CommandData) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content: option.NewNullableString(fmt.Sprintf("Server IP: `%s`", bot.addr)),
	}
}
