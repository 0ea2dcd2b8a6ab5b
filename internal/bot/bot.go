package bot

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diamondburned/arikawa/v3/discord"
	"golang.org/x/time/rate"

	"github.com/EgorLis/mcstatusbot/internal/dsclient"
	"github.com/EgorLis/mcstatusbot/internal/mcapi"
	"github.com/EgorLis/mcstatusbot/internal/tracker"
)

// Fetcher — источник статуса (mcapi.Client).
type Fetcher interface {
	FetchStatus(ctx context.Context, addr mcapi.Address) mcapi.FetchResult
}

// Platform — то, что бот дёргает у Discord каждый цикл (dsclient.Client).
type Platform interface {
	ResolveChannel(ctx context.Context) (tracker.Channel, error)
	SetPresence(ctx context.Context, activity string) error
}

type StatusBot struct {
	addr     mcapi.Address
	fetcher  Fetcher
	platform Platform
	tracker  *tracker.Tracker
	sched    *Scheduler

	// /status: не чаще раза в statusEvery на весь процесс
	limiter *rate.Limiter

	lastMu  sync.Mutex
	last    mcapi.ServerStatus
	hasLast bool
	lastSeq uint64 // сколько раз обновлялся last

	now func() time.Time
	log *log.Logger
}

const statusEvery = 5 * time.Second

func New(cfg BotConfig, fetcher Fetcher, platform Platform, logger *log.Logger) *StatusBot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	bot := &StatusBot{
		addr:     cfg.Server.Address,
		fetcher:  fetcher,
		platform: platform,
		limiter:  rate.NewLimiter(rate.Every(statusEvery), 1),
		now:      time.Now,
		log:      logger,
	}
	bot.tracker = tracker.New(bot.render, logger.WithPrefix("tracker"))
	bot.sched = NewScheduler(cfg.Poll.Interval, func(ctx context.Context) { bot.RunCycle(ctx) }, logger.WithPrefix("poll"))
	return bot
}

// Start — переход Idle→Running. Вызывается на каждый READY, но срабатывает один раз:
// сразу делает цикл и заводит таймер. Блокирует на время первого цикла.
func (bot *StatusBot) Start(ctx context.Context) bool {
	if !bot.sched.Start(ctx) {
		bot.log.Debug("already running, ready ignored")
		return false
	}
	bot.log.Info("polling started", "server", bot.addr, "every", bot.sched.Interval())
	return true
}

func (bot *StatusBot) Stop() {
	bot.sched.Stop()
}

func (bot *StatusBot) Tracker() *tracker.Tracker {
	return bot.tracker
}

func (bot *StatusBot) Scheduler() *Scheduler {
	return bot.sched
}

// LastStatus — статус из последнего цикла, дошедшего до опроса.
func (bot *StatusBot) LastStatus() (mcapi.ServerStatus, bool) {
	bot.lastMu.Lock()
	defer bot.lastMu.Unlock()
	return bot.last, bot.hasLast
}

func (bot *StatusBot) setLast(st mcapi.ServerStatus) {
	bot.lastMu.Lock()
	bot.last, bot.hasLast = st, true
	bot.lastSeq++
	bot.lastMu.Unlock()
}

func (bot *StatusBot) fetchSeq() uint64 {
	bot.lastMu.Lock()
	defer bot.lastMu.Unlock()
	return bot.lastSeq
}

func (bot *StatusBot) render(st mcapi.ServerStatus) discord.Embed {
	return dsclient.RenderEmbed(st, bot.addr.Host, bot.now())
}
