package bot

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"

	"github.com/EgorLis/mcstatusbot/internal/logging"
)

type SchedulerState int

const (
	StateIdle    SchedulerState = iota // ждём первого READY
	StateRunning                       // тикаем до конца процесса
)

func (s SchedulerState) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Scheduler гоняет цикл опроса с фиксированным интервалом.
//
// Политика перекрытий — skip-if-busy: если прошлый цикл ещё идёт (медленный
// опрос, ручной /status), новый тик пропускается. Паника внутри цикла
// ловится на границе цикла и не останавливает таймер.
type Scheduler struct {
	interval time.Duration
	cycle    func(context.Context)
	job      cron.Job
	cron     *cron.Cron
	log      *log.Logger

	started atomic.Bool
	runs    atomic.Int64

	mu      sync.Mutex
	ctx     context.Context
	stopped bool
	wg      sync.WaitGroup
}

func NewScheduler(interval time.Duration, cycle func(context.Context), logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cl := logging.CronLogger{L: logger}

	s := &Scheduler{
		interval: interval,
		cycle:    cycle,
		cron:     cron.New(cron.WithLogger(cl)),
		log:      logger,
	}
	// Recover внутри SkipIfStillRunning: тот возвращает токен без defer,
	// и паника снаружи навсегда оставила бы его занятым
	s.job = cron.NewChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)).Then(cron.FuncJob(s.runCycle))
	return s
}

// Start — Idle→Running ровно один раз. Первый цикл выполняется сразу
// (синхронно), потом заводится таймер. Повторный вызов возвращает false.
func (s *Scheduler) Start(ctx context.Context) bool {
	if !s.started.CompareAndSwap(false, true) {
		return false
	}
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.RunNow()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.cron.Schedule(cron.Every(s.interval), s.job)
		s.cron.Start()
	}
	return true
}

// RunNow — внеочередной цикл (та же защита от перекрытий, что и у таймера).
// true — цикл реально выполнился в этом вызове. До Start, после Stop и
// когда занято (идёт другой цикл) возвращает false.
func (s *Scheduler) RunNow() bool {
	s.mu.Lock()
	if !s.started.Load() || s.stopped {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	before := s.runs.Load()
	s.job.Run()
	return s.runs.Load() != before
}

// Stop останавливает таймер и ждёт текущий цикл.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()
}

func (s *Scheduler) State() SchedulerState {
	if s.started.Load() {
		return StateRunning
	}
	return StateIdle
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Runs — сколько циклов реально выполнено (пропущенные не считаются).
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

func (s *Scheduler) runCycle() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil || ctx.Err() != nil {
		return
	}
	s.runs.Inc()
	s.cycle(ctx)
}
