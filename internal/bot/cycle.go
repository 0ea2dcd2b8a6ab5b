package bot

import (
	"context"

	"github.com/EgorLis/mcstatusbot/internal/dsclient"
	"github.com/EgorLis/mcstatusbot/internal/mcapi"
	"github.com/EgorLis/mcstatusbot/internal/tracker"
)

// CycleReport — что произошло за один цикл. Aborted != nil — до опроса не дошли.
type CycleReport struct {
	Aborted   error
	FetchErr  error
	Status    mcapi.ServerStatus
	Signature mcapi.Signature
	Outcome   tracker.Outcome
}

// RunCycle: канал → статус → отпечаток → сообщение → presence.
// Ничего не возвращает ошибкой: всё, что пошло не так, в отчёте и в логе.
func (bot *StatusBot) RunCycle(ctx context.Context) CycleReport {
	ch, err := bot.platform.ResolveChannel(ctx)
	if err != nil {
		bot.log.Warn("channel not found, check discord.channel_id", "err", err)
		return CycleReport{Aborted: err}
	}

	res := bot.fetcher.FetchStatus(ctx, bot.addr)
	if res.Err != nil {
		bot.log.Debug("status degraded to offline", "server", bot.addr, "err", res.Err)
	}
	bot.setLast(res.Status)

	sig := mcapi.ComputeSignature(res.Status)
	out := bot.tracker.Reconcile(ctx, ch, res.Status, sig)
	switch {
	case out.Action == tracker.ActionFailed:
		bot.log.Error("status message update failed", "err", out.Err)
	case out.Changed():
		bot.log.Info("status message "+out.Action.String(), "message", out.MessageID, "signature", sig)
	}

	bot.updatePresence(ctx, res.Status)

	return CycleReport{
		FetchErr:  res.Err,
		Status:    res.Status,
		Signature: sig,
		Outcome:   out,
	}
}

// updatePresence — без дедупа, Discord сам идемпотентен. Ошибки только в лог.
func (bot *StatusBot) updatePresence(ctx context.Context, st mcapi.ServerStatus) {
	if err := bot.platform.SetPresence(ctx, dsclient.PresenceText(st)); err != nil {
		bot.log.Warn("presence update failed", "err", err)
	}
}
