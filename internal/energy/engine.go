package energy

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/stonebridge-systems/focuspulse/internal/api"
	"github.com/stonebridge-systems/focuspulse/internal/store"
)

// dateFormat is the local-time day key for snapshots and history.
const dateFormat = "2006-01-02"

// Snapshot is the persisted current-day energy value.
type Snapshot struct {
	Date string `json:"date"`
	XP   int    `json:"xp"`
}

// RewardMode is the persisted reward-mode descriptor. An absent or expired
// descriptor means reward mode is inactive.
type RewardMode struct {
	Active          bool      `json:"active"`
	ActivatedAt     time.Time `json:"activated_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Fetcher retrieves today's productivity summary from the backend.
type Fetcher interface {
	ProductivitySummary(ctx context.Context) (api.ProductivitySummary, error)
}

// Broadcaster is a fire-and-forget notification channel to a companion
// component (e.g. a browser extension). Implementations must never block
// the caller on delivery.
type Broadcaster interface {
	Send(msgType string, payload map[string]any)
}

// Bridge message types emitted by the engine.
const (
	MsgRewardActivated   = "reward_mode_activated"
	MsgRewardDeactivated = "reward_mode_deactivated"
)

// Classification kinds accepted by HandleClassification.
const (
	KindLearning    = "learning"
	KindDistraction = "distraction"
	KindNeutral     = "neutral"
)

// Options tunes the engine. Zero values get defaults matching the standard
// energy model.
type Options struct {
	ProductiveWeight  float64       // default 0.3
	NeutralWeight     float64       // default 0.5
	DistractingWeight float64       // default 2.0
	RewardThreshold   int           // weekly average required for reward mode, default 70
	RewardDuration    time.Duration // default 30m
	PollInterval      time.Duration // default 60s
	ReconcileDelay    time.Duration // delay before authoritative re-fetch, default 3s
	Bridge            Broadcaster   // optional
	Logf              func(format string, args ...any)
	Now               func() time.Time // injectable clock for tests
}

// Engine owns the canonical daily energy state. All mutation goes through it;
// other components read persisted values as snapshots.
type Engine struct {
	db      *store.DB
	fetcher Fetcher
	opts    Options

	mu             sync.Mutex
	current        Snapshot
	reconcileTimer *time.Timer
}

// New creates an Engine backed by the given store. The persisted snapshot is
// loaded if present; otherwise today starts at a full bar.
func New(db *store.DB, fetcher Fetcher, opts Options) *Engine {
	if opts.ProductiveWeight == 0 {
		opts.ProductiveWeight = 0.3
	}
	if opts.NeutralWeight == 0 {
		opts.NeutralWeight = 0.5
	}
	if opts.DistractingWeight == 0 {
		opts.DistractingWeight = 2.0
	}
	if opts.RewardThreshold == 0 {
		opts.RewardThreshold = 70
	}
	if opts.RewardDuration == 0 {
		opts.RewardDuration = 30 * time.Minute
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = 60 * time.Second
	}
	if opts.ReconcileDelay == 0 {
		opts.ReconcileDelay = 3 * time.Second
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{db: db, fetcher: fetcher, opts: opts}

	var snap Snapshot
	found, err := db.GetJSON(store.KeyEnergySnapshot, &snap)
	if err == nil && found {
		e.current = snap
	} else {
		// No recorded activity yet: start the day full.
		e.current = Snapshot{Date: e.dateKey(), XP: 100}
	}
	return e
}

// dateKey returns today's local date key.
func (e *Engine) dateKey() string {
	return e.opts.Now().Format(dateFormat)
}

// Current returns the current snapshot.
func (e *Engine) Current() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// FetchAndRecompute pulls today's minutes from the backend and recomputes the
// energy value. A fetch failure leaves the current value untouched and is
// only logged; staleness beats crashing the caller.
func (e *Engine) FetchAndRecompute(ctx context.Context) {
	summary, err := e.fetcher.ProductivitySummary(ctx)
	if err != nil {
		e.opts.Logf("productivity fetch failed, keeping last value: %v", err)
		return
	}

	xp := 100
	if summary.TotalMinutes() > 0 {
		raw := 100 +
			e.opts.ProductiveWeight*float64(summary.ProductiveMinutes) -
			e.opts.NeutralWeight*float64(summary.NeutralMinutes) -
			e.opts.DistractingWeight*float64(summary.DistractingMinutes)
		xp = clampXP(int(math.Round(raw)))
	}

	e.setXP(xp)
}

// setXP updates and persists the current snapshot for today.
func (e *Engine) setXP(xp int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = Snapshot{Date: e.dateKey(), XP: clampXP(xp)}
	if err := e.db.PutJSON(store.KeyEnergySnapshot, e.current); err != nil {
		e.opts.Logf("persisting energy snapshot: %v", err)
	}
}

// IncreaseXP clamp-adds points to the current value. Non-positive input is a
// no-op, not an error.
func (e *Engine) IncreaseXP(points int) {
	if points <= 0 {
		return
	}
	e.setXP(e.Current().XP + points)
}

// DecreaseXP clamp-subtracts points from the current value. Non-positive
// input is a no-op, not an error.
func (e *Engine) DecreaseXP(points int) {
	if points <= 0 {
		return
	}
	e.setXP(e.Current().XP - points)
}

// HandleClassification applies an immediate optimistic delta for a classified
// activity, then schedules an authoritative re-fetch shortly after, since the
// backend's own computation lags real-time events by its polling interval.
// Unknown kinds are ignored.
func (e *Engine) HandleClassification(ctx context.Context, kind string) {
	switch kind {
	case KindLearning:
		e.IncreaseXP(5)
	case KindDistraction:
		e.DecreaseXP(5)
	case KindNeutral:
		e.DecreaseXP(2)
	default:
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.reconcileTimer != nil {
		e.reconcileTimer.Stop()
	}
	e.reconcileTimer = time.AfterFunc(e.opts.ReconcileDelay, func() {
		e.FetchAndRecompute(ctx)
	})
}

// ReconcileDelay reports how long after a classification nudge the engine
// waits before refetching the authoritative value.
func (e *Engine) ReconcileDelay() time.Duration {
	return e.opts.ReconcileDelay
}

// WeekAverage returns the arithmetic mean of the most recent 7 archived days,
// or 100 when no history exists yet.
func (e *Engine) WeekAverage() int {
	entries, err := e.db.RecentHistory(7)
	if err != nil || len(entries) == 0 {
		return 100
	}
	sum := 0
	for _, entry := range entries {
		sum += entry.XP
	}
	return sum / len(entries)
}

// RewardEligible reports whether the trailing weekly average meets the
// reward-mode threshold.
func (e *Engine) RewardEligible() bool {
	return e.WeekAverage() >= e.opts.RewardThreshold
}

// ActivateRewardMode starts a timed reward window and notifies the companion
// bridge. A non-positive duration uses the configured default.
func (e *Engine) ActivateRewardMode(minutes int) (RewardMode, error) {
	if !e.RewardEligible() {
		return RewardMode{}, fmt.Errorf("weekly average %d is below the reward threshold %d", e.WeekAverage(), e.opts.RewardThreshold)
	}

	duration := time.Duration(minutes) * time.Minute
	if minutes <= 0 {
		duration = e.opts.RewardDuration
	}

	now := e.opts.Now()
	mode := RewardMode{
		Active:          true,
		ActivatedAt:     now,
		ExpiresAt:       now.Add(duration),
		DurationMinutes: int(duration / time.Minute),
	}
	if err := e.db.PutJSON(store.KeyRewardMode, mode); err != nil {
		return RewardMode{}, fmt.Errorf("persisting reward mode: %w", err)
	}

	if e.opts.Bridge != nil {
		e.opts.Bridge.Send(MsgRewardActivated, map[string]any{
			"expires_at":       mode.ExpiresAt.Format(time.RFC3339),
			"duration_minutes": mode.DurationMinutes,
		})
	}
	return mode, nil
}

// DeactivateRewardMode clears reward mode and broadcasts the deactivation.
func (e *Engine) DeactivateRewardMode() error {
	if err := e.db.DeleteKey(store.KeyRewardMode); err != nil {
		return err
	}
	if e.opts.Bridge != nil {
		e.opts.Bridge.Send(MsgRewardDeactivated, nil)
	}
	return nil
}

// RewardState returns the current reward mode. Absent, corrupted or expired
// state reads as inactive.
func (e *Engine) RewardState() (RewardMode, bool) {
	var mode RewardMode
	found, err := e.db.GetJSON(store.KeyRewardMode, &mode)
	if err != nil || !found || !mode.Active {
		return RewardMode{}, false
	}
	if !mode.ExpiresAt.After(e.opts.Now()) {
		return RewardMode{}, false
	}
	return mode, true
}

// Tick runs one poll cycle: archive yesterday on date rollover, expire reward
// mode, then recompute from the backend.
func (e *Engine) Tick(ctx context.Context) {
	e.checkRollover()
	e.checkRewardExpiry()
	e.FetchAndRecompute(ctx)
}

// checkRollover archives the previous day's final value exactly once when the
// local date advances. The persisted snapshot is re-read right before the
// conditional write so an overlapping update cannot archive a stale value.
func (e *Engine) checkRollover() {
	today := e.dateKey()

	var lastSeen string
	found, err := e.db.GetJSON(store.KeyLastSeenDate, &lastSeen)
	if err != nil {
		e.opts.Logf("reading last-seen date: %v", err)
		return
	}

	if found && lastSeen == today {
		return
	}

	// Re-read the persisted snapshot: it is the authoritative final value
	// for the day being closed out.
	var snap Snapshot
	if ok, err := e.db.GetJSON(store.KeyEnergySnapshot, &snap); err == nil && ok && snap.Date != "" && snap.Date != today {
		if err := e.db.ArchiveDay(snap.Date, snap.XP); err != nil {
			e.opts.Logf("archiving %s: %v", snap.Date, err)
		}
	}

	if err := e.db.PutJSON(store.KeyLastSeenDate, today); err != nil {
		e.opts.Logf("persisting last-seen date: %v", err)
	}

	e.mu.Lock()
	if e.current.Date != today {
		e.current = Snapshot{Date: today, XP: 100}
	}
	e.mu.Unlock()
}

// checkRewardExpiry clears reward mode once its window has passed.
func (e *Engine) checkRewardExpiry() {
	var mode RewardMode
	found, err := e.db.GetJSON(store.KeyRewardMode, &mode)
	if err != nil || !found || !mode.Active {
		return
	}
	if !mode.ExpiresAt.After(e.opts.Now()) {
		if err := e.DeactivateRewardMode(); err != nil {
			e.opts.Logf("clearing expired reward mode: %v", err)
		}
	}
}

// Run starts the poll loop: an immediate tick, then one per interval.
// Blocks until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.Tick(ctx)

	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Close()
			return ctx.Err()
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// Close stops any pending reconcile timer.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.reconcileTimer != nil {
		e.reconcileTimer.Stop()
		e.reconcileTimer = nil
	}
}
