// Package evolve implements the milestone notifiers: five-bucket progress
// stages that are celebrated at most once, persisted across sessions.
package evolve

import (
	"fmt"
	"sync"
	"time"

	"github.com/stonebridge-systems/focuspulse/internal/api"
	"github.com/stonebridge-systems/focuspulse/internal/store"
)

// milestoneThresholds are the inclusive lower bounds of buckets 1..5.
// A value of exactly 20 belongs to bucket 1, not bucket 0.
var milestoneThresholds = []float64{20, 40, 60, 80, 100}

// Bucket returns the milestone bucket (0-5) for a percentage. Out-of-range
// input is clamped.
func Bucket(pct float64) int {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	bucket := 0
	for _, threshold := range milestoneThresholds {
		if pct >= threshold {
			bucket++
		}
	}
	return bucket
}

// milestoneID is the persisted identifier of a bucket within a namespace.
func milestoneID(bucket int) string {
	return fmt.Sprintf("stage-%d", bucket)
}

// Presentation describes one celebration step handed to the presenter.
type Presentation struct {
	Namespace string
	Bucket    int
	Label     string
}

// Presenter renders the timed celebration sequence phases. Each call blocks
// conceptually for its phase; the notifier drives the timing.
type Presenter interface {
	ShowVisual(p Presentation)
	ShowLabel(p Presentation)
	FadeOut(p Presentation)
}

// Timing controls the presentation phase durations.
type Timing struct {
	Visual time.Duration // full-screen visual, default 3s
	Label  time.Duration // text label, default 2.5s
	Fade   time.Duration // fade out, default 1s
}

// stage labels per namespace, indexed by bucket 1..5.
var stageLabels = map[string][]string{
	store.NamespaceLevel:  {"Spark", "Flame", "Blaze", "Beacon", "Supernova"},
	store.NamespaceAvatar: {"Hatchling", "Explorer", "Adept", "Sage", "Luminary"},
}

// Notifier is one persisted milestone state machine. Two instances run with
// different namespaces ("level" and "avatar") but identical semantics.
type Notifier struct {
	db        *store.DB
	namespace string
	presenter Presenter
	timing    Timing
	logf      func(format string, args ...any)

	mu          sync.Mutex
	lastBucket  int  // last bucket observed this session
	observed    bool // whether any bucket was observed this session
	presenting  bool
	fadeTimer   *time.Timer
	labelTimer  *time.Timer
	visualTimer *time.Timer
	onComplete  func(Presentation)
}

// NewNotifier creates a notifier for a namespace. The presenter may be nil,
// in which case milestones are recorded without a celebration sequence.
func NewNotifier(db *store.DB, namespace string, presenter Presenter, timing Timing) *Notifier {
	if timing.Visual == 0 {
		timing.Visual = 3 * time.Second
	}
	if timing.Label == 0 {
		timing.Label = 2500 * time.Millisecond
	}
	if timing.Fade == 0 {
		timing.Fade = time.Second
	}
	return &Notifier{
		db:        db,
		namespace: namespace,
		presenter: presenter,
		timing:    timing,
		logf:      func(string, ...any) {},
	}
}

// SetLogf installs a logger for persistence failures.
func (n *Notifier) SetLogf(logf func(format string, args ...any)) {
	n.logf = logf
}

// SetOnComplete installs a callback invoked after a presentation sequence
// finishes and the milestone is recorded.
func (n *Notifier) SetOnComplete(fn func(Presentation)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onComplete = fn
}

// Observe evaluates a newly computed percentage. A celebration fires only
// when the bucket is higher than the last one observed this session AND the
// milestone has not already been recorded. While a presentation is in flight
// new triggers are deferred to the next observation.
func (n *Notifier) Observe(pct float64) bool {
	bucket := Bucket(pct)

	n.mu.Lock()
	defer n.mu.Unlock()

	// An in-flight presentation runs to completion untouched; the trigger
	// check resumes on the next observation after it finishes.
	if n.presenting {
		return false
	}

	crossed := n.observed && bucket > n.lastBucket
	first := !n.observed
	n.observed = true
	n.lastBucket = bucket

	if bucket == 0 {
		return false
	}
	// The first observation of a session can fire too (previous milestone
	// is the implicit zero state); the persisted seen set is what keeps an
	// identical recomputation after reload from replaying.
	if !crossed && !first {
		return false
	}

	seen, err := n.db.IsMilestoneSeen(n.namespace, milestoneID(bucket))
	if err != nil {
		n.logf("milestone lookup: %v", err)
		return false
	}
	if seen {
		return false
	}

	n.startPresentation(bucket)
	return true
}

// startPresentation runs the timed visual → label → fade sequence. Timers in
// flight never restart; they are cleared only on Close. Callers hold n.mu.
func (n *Notifier) startPresentation(bucket int) {
	p := Presentation{
		Namespace: n.namespace,
		Bucket:    bucket,
		Label:     StageLabel(n.namespace, bucket),
	}
	n.presenting = true

	if n.presenter != nil {
		n.presenter.ShowVisual(p)
	}
	n.visualTimer = time.AfterFunc(n.timing.Visual, func() {
		if !n.stillPresenting() {
			return
		}
		if n.presenter != nil {
			n.presenter.ShowLabel(p)
		}
		n.mu.Lock()
		n.labelTimer = time.AfterFunc(n.timing.Label, func() {
			if !n.stillPresenting() {
				return
			}
			if n.presenter != nil {
				n.presenter.FadeOut(p)
			}
			n.mu.Lock()
			n.fadeTimer = time.AfterFunc(n.timing.Fade, func() {
				if !n.stillPresenting() {
					return
				}
				n.finishPresentation(p)
			})
			n.mu.Unlock()
		})
		n.mu.Unlock()
	})
}

// stillPresenting guards timer callbacks against a Close that raced them.
func (n *Notifier) stillPresenting() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.presenting
}

// finishPresentation records the milestone permanently and invokes the
// completion callback.
func (n *Notifier) finishPresentation(p Presentation) {
	if _, err := n.db.MarkMilestoneSeen(n.namespace, milestoneID(p.Bucket)); err != nil {
		n.logf("recording milestone: %v", err)
	}

	n.mu.Lock()
	done := n.onComplete
	n.mu.Unlock()

	if done != nil {
		done(p)
	}

	// Clearing presenting last means Presenting() turning false implies the
	// milestone is recorded and the completion callback has run.
	n.mu.Lock()
	n.presenting = false
	n.mu.Unlock()
}

// Presenting reports whether a celebration sequence is currently running.
func (n *Notifier) Presenting() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.presenting
}

// Close cancels any pending presentation timers so they cannot fire into a
// torn-down view. The in-flight milestone is not recorded.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range []*time.Timer{n.visualTimer, n.labelTimer, n.fadeTimer} {
		if t != nil {
			t.Stop()
		}
	}
	n.presenting = false
}

// StageLabel returns the display label for a bucket in a namespace, or an
// empty string for bucket 0.
func StageLabel(namespace string, bucket int) string {
	labels := stageLabels[namespace]
	if bucket < 1 || bucket > len(labels) {
		return ""
	}
	return labels[bucket-1]
}

// OverallCompletion computes the chapter-completion percentage across all
// plans, the milestone source of the "level" notifier. A chapter counts as
// done when it is completed or at least 80% through.
func OverallCompletion(progressByPlan map[int64]api.ChapterProgress) float64 {
	total, done := 0, 0
	for _, progress := range progressByPlan {
		for _, ch := range progress.Chapters {
			total++
			if ch.IsCompleted || ch.ProgressPercentage >= 80 {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
