package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/EgorLis/mcstatusbot/internal/mcapi"
)

func TestCmdIP(t *testing.T) {
	b, _, _ := newTestBot(t)

	resp := b.cmdIP(context.Background(), cmdroute.CommandData{})
	if resp.Content == nil || resp.Content.Val != "Server IP: `191.96.231.5:31190`" {
		t.Fatalf("content=%+v", resp.Content)
	}
}

func TestCmdStatus_BeforeStartFetchesDirectly(t *testing.T) {
	b, f, p := newTestBot(t)
	f.set(onlineResult(7, 20, "Hi"))

	resp := b.cmdStatus(context.Background(), cmdroute.CommandData{})
	if resp.Embeds == nil || len(*resp.Embeds) != 1 {
		t.Fatalf("embeds=%v", resp.Embeds)
	}
	if got := (*resp.Embeds)[0].Fields[0].Value; got != "7 / 20" {
		t.Fatalf("players=%q", got)
	}
	if f.calls != 1 {
		t.Fatalf("fetch calls=%d", f.calls)
	}
	// планировщик не запущен — канал не трогаем
	if s, e := p.ch.counts(); s != 0 || e != 0 {
		t.Fatalf("sends=%d edits=%d", s, e)
	}
}

func TestCmdStatus_RunsCycleWhenStarted(t *testing.T) {
	b, f, p := newTestBot(t)
	f.set(onlineResult(3, 20, "Hi"))
	b.Start(context.Background())

	f.set(onlineResult(5, 20, "Hi"))
	resp := b.cmdStatus(context.Background(), cmdroute.CommandData{})

	if got := (*resp.Embeds)[0].Fields[0].Value; got != "5 / 20" {
		t.Fatalf("players=%q", got)
	}
	// внеочередной цикл поправил карточку
	if s, e := p.ch.counts(); s != 1 || e != 1 {
		t.Fatalf("sends=%d edits=%d", s, e)
	}
}

func TestCmdStatus_RateLimited(t *testing.T) {
	b, f, _ := newTestBot(t)
	f.set(mcapi.FetchResult{Status: mcapi.Offline()})

	b.cmdStatus(context.Background(), cmdroute.CommandData{})
	resp := b.cmdStatus(context.Background(), cmdroute.CommandData{})

	if resp.Flags&discord.EphemeralMessage == 0 {
		t.Fatalf("rate-limited reply must be ephemeral")
	}
	if resp.Content == nil || !strings.Contains(resp.Content.Val, "moment ago") {
		t.Fatalf("content=%+v", resp.Content)
	}
	if f.calls != 1 {
		t.Fatalf("fetch calls=%d", f.calls)
	}
}

func TestCmdStatus_AbortedCycleFetchesDirectly(t *testing.T) {
	b, f, p := newTestBot(t)
	f.set(onlineResult(3, 20, "Hi"))
	b.Start(context.Background())

	// канал пропал: цикл прервётся до опроса, LastStatus остаётся старым
	p.mu.Lock()
	p.resolveErr = errors.New("unknown channel")
	p.mu.Unlock()
	f.set(onlineResult(9, 20, "Hi"))

	resp := b.cmdStatus(context.Background(), cmdroute.CommandData{})
	if got := (*resp.Embeds)[0].Fields[0].Value; got != "9 / 20" {
		t.Fatalf("stale status in reply: players=%q", got)
	}
	if f.calls != 2 {
		t.Fatalf("fetch calls=%d", f.calls)
	}
}

func TestCmdStatus_BusyCycleFetchesDirectly(t *testing.T) {
	b, f, _ := newTestBot(t)
	f.set(onlineResult(3, 20, "Hi"))
	b.Start(context.Background())

	// следующий цикл зависает внутри опроса, пока не отпустим
	entered, release := make(chan struct{}), make(chan struct{})
	f.mu.Lock()
	f.hook = func() {
		f.mu.Lock()
		f.hook = nil
		f.mu.Unlock()
		close(entered)
		<-release
	}
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.Scheduler().RunNow()
		close(done)
	}()
	<-entered

	f.set(onlineResult(6, 20, "Hi"))
	resp := b.cmdStatus(context.Background(), cmdroute.CommandData{})
	if got := (*resp.Embeds)[0].Fields[0].Value; got != "6 / 20" {
		t.Fatalf("stale status in reply: players=%q", got)
	}

	close(release)
	<-done
}
