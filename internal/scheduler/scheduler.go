package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"GoldSentinel/internal/collector"
	"GoldSentinel/internal/metrics"
	"GoldSentinel/internal/model"
	"GoldSentinel/internal/notifier"
	"GoldSentinel/internal/pricelog"
	"GoldSentinel/internal/recorder"
	"GoldSentinel/internal/strategy"
)

// Sender delivers alert messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler drives the fetch and check loops for one session.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Log       *pricelog.Log
	Engine    *strategy.Engine
	Notifier  Sender // nil disables alerts
	Recorder  recorder.Recorder
	Status    *metrics.Server // nil when the status server is off
	SessionID string
	Now       func() time.Time
	Ctx       context.Context

	mu     sync.Mutex
	latest *model.Decision
}

// NewScheduler creates a new Scheduler with a fresh session id.
func NewScheduler(ctx context.Context, col *collector.Collector, plog *pricelog.Log, eng *strategy.Engine, sender Sender, rec recorder.Recorder) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Collector: col,
		Log:       plog,
		Engine:    eng,
		Notifier:  sender,
		Recorder:  rec,
		SessionID: uuid.NewString(),
		Now:       time.Now,
		Ctx:       ctx,
	}
}

// RegisterAll registers the fetch and check jobs.
func (s *Scheduler) RegisterAll(fetchCron, checkCron string) error {
	if _, err := s.Cron.AddFunc(fetchCron, s.fetchTask); err != nil {
		return fmt.Errorf("register fetch task: %w", err)
	}
	if _, err := s.Cron.AddFunc(checkCron, s.checkTask); err != nil {
		return fmt.Errorf("register check task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Str("session", s.SessionID).Msg("scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// FetchNow collects one quote and appends it to the price log.
func (s *Scheduler) FetchNow() (model.PriceObservation, error) {
	obs, err := s.Collector.Collect(s.Ctx, s.Now())
	if err != nil {
		return obs, err
	}
	if err := s.Log.Append(obs); err != nil {
		return obs, fmt.Errorf("append price log: %w", err)
	}
	if err := s.Recorder.RecordObservation(&obs); err != nil {
		log.Error().Err(err).Msg("record observation")
	}
	log.Info().
		Time("time", obs.Time).
		Float64("price", obs.Price).
		Str("aux", obs.Aux).
		Msg("price recorded")
	return obs, nil
}

// CheckNow evaluates the newest price log. It returns nil when there is
// no log yet or the latest tick was already processed.
func (s *Scheduler) CheckNow() (*model.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.Log.Latest()
	if errors.Is(err, pricelog.ErrNoLog) {
		log.Debug().Str("dir", s.Log.Dir).Msg("no price log yet")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load price log: %w", err)
	}
	if len(history) == 0 {
		return nil, nil
	}

	d, ok := s.Engine.Process(history)
	if !ok {
		return nil, nil
	}
	s.latest = d

	log.Info().
		Time("time", d.Time).
		Float64("price", d.Price).
		Str("regime", string(d.Regime)).
		Str("action", string(d.Action)).
		Int("sold_level", d.SoldLevel).
		Msg(notifier.FormatDecision(d))

	metrics.ObserveDecision(d)
	if s.Status != nil {
		s.Status.SetLatest(d)
	}
	if err := s.Recorder.RecordDecision(s.SessionID, d); err != nil {
		log.Error().Err(err).Msg("record decision")
	}
	if d.Action.IsSell() {
		s.trySend(notifier.FormatAlert(d))
	}
	return d, nil
}

// Latest returns the most recent processed decision, or nil.
func (s *Scheduler) Latest() *model.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

func (s *Scheduler) fetchTask() {
	if _, err := s.FetchNow(); err != nil {
		log.Error().Err(err).Msg("fetch task")
	}
}

func (s *Scheduler) checkTask() {
	if _, err := s.CheckNow(); err != nil {
		log.Error().Err(err).Msg("check task")
	}
}

// WatchLog runs a check whenever a price log file in the directory is
// written. Blocks until ctx is cancelled.
func (s *Scheduler) WatchLog(ctx context.Context) error {
	if err := os.MkdirAll(s.Log.Dir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(s.Log.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.Log.Dir, err)
	}
	log.Info().Str("dir", s.Log.Dir).Msg("watching price log")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(ev.Name) != ".csv" {
				continue
			}
			s.checkTask()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("price log watcher")
		}
	}
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		if d := s.Latest(); d != nil {
			return notifier.FormatDecision(d)
		}
		return "暂无决策记录"
	case "/levels":
		if d := s.Latest(); d != nil {
			return notifier.FormatLevels(d)
		}
		return "暂无决策记录"
	case "/check":
		d, err := s.CheckNow()
		if err != nil {
			return fmt.Sprintf("❌ 检查失败: %v", err)
		}
		if d == nil {
			return "没有新的价格数据"
		}
		return notifier.FormatDecision(d)
	default:
		return "可用命令:\n• /status 最新决策\n• /levels 止盈止损位\n• /check 立即检查"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}

// cronLogger routes cron's internal logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
