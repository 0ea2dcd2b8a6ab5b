package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/EgorLis/mcstatusbot/internal/logging"
	"github.com/EgorLis/mcstatusbot/internal/mcapi"
	"github.com/EgorLis/mcstatusbot/internal/tracker"
)

// ---------- fakes ----------

type fakeFetcher struct {
	mu    sync.Mutex
	next  mcapi.FetchResult
	calls int
	hook  func()
}

func (f *fakeFetcher) set(res mcapi.FetchResult) {
	f.mu.Lock()
	f.next = res
	f.mu.Unlock()
}

func (f *fakeFetcher) FetchStatus(context.Context, mcapi.Address) mcapi.FetchResult {
	f.mu.Lock()
	f.calls++
	res, hook := f.next, f.hook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return res
}

type fakeChannel struct {
	mu      sync.Mutex
	nextID  discord.MessageID
	sends   int
	edits   int
	live    map[discord.MessageID]bool
	embeds  []discord.Embed
	editErr error
}

func (c *fakeChannel) Send(_ context.Context, e discord.Embed) (discord.MessageID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends++
	c.nextID++
	c.live[c.nextID] = true
	c.embeds = append(c.embeds, e)
	return c.nextID, nil
}

func (c *fakeChannel) Edit(_ context.Context, id discord.MessageID, e discord.Embed) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edits++
	if c.editErr != nil {
		return c.editErr
	}
	if !c.live[id] {
		return tracker.ErrNotFound
	}
	c.embeds = append(c.embeds, e)
	return nil
}

func (c *fakeChannel) counts() (sends, edits int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sends, c.edits
}

type fakePlatform struct {
	mu         sync.Mutex
	ch         *fakeChannel
	resolveErr error
	presences  []string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{ch: &fakeChannel{nextID: 500, live: map[discord.MessageID]bool{}}}
}

func (p *fakePlatform) ResolveChannel(context.Context) (tracker.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolveErr != nil {
		return nil, p.resolveErr
	}
	return p.ch, nil
}

func (p *fakePlatform) SetPresence(_ context.Context, activity string) error {
	p.mu.Lock()
	p.presences = append(p.presences, activity)
	p.mu.Unlock()
	return nil
}

func (p *fakePlatform) lastPresence() (string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.presences) == 0 {
		return "", 0
	}
	return p.presences[len(p.presences)-1], len(p.presences)
}

func onlineResult(players, max int, motd ...string) mcapi.FetchResult {
	return mcapi.FetchResult{Status: mcapi.ServerStatus{
		Online:        true,
		PlayersOnline: &players,
		PlayersMax:    &max,
		MOTD:          motd,
	}}
}

func testConfig() BotConfig {
	cfg := Defaults()
	cfg.Server.Host = "191.96.231.5"
	cfg.Server.Port = 31190
	cfg.Poll.Interval = time.Hour // тики таймера в тестах не нужны
	return cfg
}

func newTestBot(t *testing.T) (*StatusBot, *fakeFetcher, *fakePlatform) {
	t.Helper()
	f := &fakeFetcher{}
	p := newFakePlatform()
	b := New(testConfig(), f, p, logging.Discard())
	b.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(b.Stop)
	return b, f, p
}

// ---------- scenarios ----------

func TestCycle_Scenarios(t *testing.T) {
	b, f, p := newTestBot(t)
	ctx := context.Background()

	// 1: первый цикл, сообщения нет — отправляем одно
	f.set(onlineResult(3, 20, "Hi"))
	r := b.RunCycle(ctx)
	if r.Outcome.Action != tracker.ActionCreated {
		t.Fatalf("scenario 1: action=%v", r.Outcome.Action)
	}
	if s, e := p.ch.counts(); s != 1 || e != 0 {
		t.Fatalf("scenario 1: sends=%d edits=%d", s, e)
	}
	if got, _ := p.lastPresence(); got != "3 Players" {
		t.Fatalf("scenario 1: presence=%q", got)
	}

	// 2: тот же ответ — ни send, ни edit; presence всё равно ставим
	r = b.RunCycle(ctx)
	if r.Outcome.Action != tracker.ActionUnchanged {
		t.Fatalf("scenario 2: action=%v", r.Outcome.Action)
	}
	if s, e := p.ch.counts(); s != 1 || e != 0 {
		t.Fatalf("scenario 2: sends=%d edits=%d", s, e)
	}
	if _, n := p.lastPresence(); n != 2 {
		t.Fatalf("scenario 2: presence updates=%d", n)
	}

	// 3: игроков стало 4 — ровно один edit
	f.set(onlineResult(4, 20, "Hi"))
	r = b.RunCycle(ctx)
	if r.Outcome.Action != tracker.ActionEdited {
		t.Fatalf("scenario 3: action=%v", r.Outcome.Action)
	}
	if s, e := p.ch.counts(); s != 1 || e != 1 {
		t.Fatalf("scenario 3: sends=%d edits=%d", s, e)
	}

	// 4: провайдер не отвечает — один edit на оффлайн, отпечаток = sentinel
	f.set(mcapi.FetchResult{Status: mcapi.Offline(), Err: context.DeadlineExceeded})
	r = b.RunCycle(ctx)
	if r.Outcome.Action != tracker.ActionEdited || r.Signature != mcapi.OfflineSignature {
		t.Fatalf("scenario 4: action=%v sig=%v", r.Outcome.Action, r.Signature)
	}
	if !errors.Is(r.FetchErr, context.DeadlineExceeded) {
		t.Fatalf("scenario 4: fetch err=%v", r.FetchErr)
	}
	if snap := b.Tracker().Snapshot(); snap.LastSignature != mcapi.OfflineSignature {
		t.Fatalf("scenario 4: tracked signature=%v", snap.LastSignature)
	}
	if got, _ := p.lastPresence(); got != "Offline" {
		t.Fatalf("scenario 4: presence=%q", got)
	}
	// другая причина оффлайна — изменений нет
	f.set(mcapi.FetchResult{Status: mcapi.Offline(), Err: mcapi.ErrMalformed})
	b.RunCycle(ctx)
	if s, e := p.ch.counts(); s != 1 || e != 2 {
		t.Fatalf("scenario 4: sends=%d edits=%d", s, e)
	}

	// 5: сообщение удалили — edit падает с not found, в том же цикле шлём новое
	old := b.Tracker().Snapshot().MessageID
	p.ch.mu.Lock()
	delete(p.ch.live, old)
	p.ch.mu.Unlock()

	f.set(onlineResult(1, 20, "Hi"))
	r = b.RunCycle(ctx)
	if r.Outcome.Action != tracker.ActionRecreated {
		t.Fatalf("scenario 5: action=%v", r.Outcome.Action)
	}
	if s, e := p.ch.counts(); s != 2 || e != 3 {
		t.Fatalf("scenario 5: sends=%d edits=%d", s, e)
	}
	if id := b.Tracker().Snapshot().MessageID; id == old || !id.IsValid() {
		t.Fatalf("scenario 5: tracked id=%v (old %v)", id, old)
	}
}

func TestCycle_ChannelUnresolvableAbortsBeforeFetch(t *testing.T) {
	b, f, p := newTestBot(t)
	p.resolveErr = errors.New("unknown channel")

	r := b.RunCycle(context.Background())
	if r.Aborted == nil {
		t.Fatalf("expected aborted cycle")
	}
	if f.calls != 0 {
		t.Fatalf("status must not be fetched, calls=%d", f.calls)
	}
	if _, n := p.lastPresence(); n != 0 {
		t.Fatalf("presence must not be touched, updates=%d", n)
	}

	// следующий тик — канал нашёлся, всё как обычно
	p.resolveErr = nil
	f.set(onlineResult(2, 10))
	if r := b.RunCycle(context.Background()); r.Outcome.Action != tracker.ActionCreated {
		t.Fatalf("action=%v", r.Outcome.Action)
	}
}

func TestCycle_EmbedContent(t *testing.T) {
	b, f, p := newTestBot(t)
	f.set(onlineResult(3, 20, "Hi"))

	b.RunCycle(context.Background())

	e := p.ch.embeds[0]
	if e.Fields[0].Value != "3 / 20" || e.Fields[2].Value != "191.96.231.5" {
		t.Fatalf("fields=%+v", e.Fields)
	}
}
