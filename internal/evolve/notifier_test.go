package evolve

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebridge-systems/focuspulse/internal/api"
	"github.com/stonebridge-systems/focuspulse/internal/store"
)

// recordingPresenter captures presentation phases in order.
type recordingPresenter struct {
	mu     sync.Mutex
	phases []string
}

func (p *recordingPresenter) record(phase string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phases = append(p.phases, phase)
}

func (p *recordingPresenter) ShowVisual(Presentation) { p.record("visual") }
func (p *recordingPresenter) ShowLabel(Presentation)  { p.record("label") }
func (p *recordingPresenter) FadeOut(Presentation)    { p.record("fade") }

func (p *recordingPresenter) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.phases...)
}

// fastTiming keeps presentation sequences short in tests.
var fastTiming = Timing{
	Visual: 10 * time.Millisecond,
	Label:  10 * time.Millisecond,
	Fade:   10 * time.Millisecond,
}

func newTestNotifier(t *testing.T, namespace string) (*Notifier, *store.DB, *recordingPresenter) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	presenter := &recordingPresenter{}
	n := NewNotifier(db, namespace, presenter, fastTiming)
	t.Cleanup(n.Close)
	return n, db, presenter
}

func waitForIdle(t *testing.T, n *Notifier) {
	t.Helper()
	assert.Eventually(t, func() bool { return !n.Presenting() },
		2*time.Second, 5*time.Millisecond)
}

func TestBucket(t *testing.T) {
	tests := []struct {
		pct  float64
		want int
	}{
		{0, 0},
		{19.9, 0},
		{20, 1}, // inclusive lower bound
		{39, 1},
		{40, 2},
		{60, 3},
		{80, 4},
		{99, 4},
		{100, 5},
		{-10, 0},
		{250, 5},
	}

	for _, tc := range tests {
		if got := Bucket(tc.pct); got != tc.want {
			t.Errorf("Bucket(%v) = %d, want %d", tc.pct, got, tc.want)
		}
	}
}

func TestObserve_FiresFullSequenceAndRecords(t *testing.T) {
	n, db, presenter := newTestNotifier(t, store.NamespaceAvatar)

	var completed []Presentation
	n.SetOnComplete(func(p Presentation) { completed = append(completed, p) })

	fired := n.Observe(45)
	assert.True(t, fired)
	waitForIdle(t, n)

	assert.Equal(t, []string{"visual", "label", "fade"}, presenter.snapshot())
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].Bucket)
	assert.Equal(t, "Explorer", completed[0].Label)

	seen, err := db.IsMilestoneSeen(store.NamespaceAvatar, "stage-2")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestObserve_SeenMilestoneNeverRefires(t *testing.T) {
	n, db, _ := newTestNotifier(t, store.NamespaceLevel)

	_, err := db.MarkMilestoneSeen(store.NamespaceLevel, "stage-2")
	require.NoError(t, err)

	// Recomputing the identical percentage after a "reload" must not replay.
	assert.False(t, n.Observe(45))

	// Oscillating below and back across the boundary changes nothing.
	assert.False(t, n.Observe(10))
	assert.False(t, n.Observe(45))
}

func TestObserve_StableBucketDoesNotRefire(t *testing.T) {
	n, _, _ := newTestNotifier(t, store.NamespaceAvatar)

	assert.True(t, n.Observe(25))
	waitForIdle(t, n)

	assert.False(t, n.Observe(30), "same bucket, no new trigger")
	assert.False(t, n.Observe(22))
}

func TestObserve_HigherBucketFiresAgain(t *testing.T) {
	n, _, _ := newTestNotifier(t, store.NamespaceAvatar)

	assert.True(t, n.Observe(25))
	waitForIdle(t, n)

	assert.True(t, n.Observe(65), "crossing two boundaries fires the new stage")
	waitForIdle(t, n)
}

func TestObserve_ZeroBucketNeverFires(t *testing.T) {
	n, _, presenter := newTestNotifier(t, store.NamespaceAvatar)

	assert.False(t, n.Observe(0))
	assert.False(t, n.Observe(19))
	assert.Empty(t, presenter.snapshot())
}

func TestObserve_InFlightPresentationDefersTrigger(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	presenter := &recordingPresenter{}
	slow := Timing{Visual: 100 * time.Millisecond, Label: 10 * time.Millisecond, Fade: 10 * time.Millisecond}
	n := NewNotifier(db, store.NamespaceAvatar, presenter, slow)
	t.Cleanup(n.Close)

	assert.True(t, n.Observe(25))
	assert.True(t, n.Presenting())

	// Mid-presentation updates do not restart timers or fire.
	assert.False(t, n.Observe(65))
	waitForIdle(t, n)

	// The deferred crossing fires on the next observation.
	assert.True(t, n.Observe(65))
	waitForIdle(t, n)
}

func TestClose_CancelsPendingTimers(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	presenter := &recordingPresenter{}
	slow := Timing{Visual: 50 * time.Millisecond, Label: 50 * time.Millisecond, Fade: 50 * time.Millisecond}
	n := NewNotifier(db, store.NamespaceAvatar, presenter, slow)

	assert.True(t, n.Observe(45))
	n.Close()

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, []string{"visual"}, presenter.snapshot(), "no phase after Close")

	// The interrupted milestone was never recorded, so it can fire later.
	seen, err := db.IsMilestoneSeen(store.NamespaceAvatar, "stage-2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestNamespacesAreIndependent(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	level := NewNotifier(db, store.NamespaceLevel, nil, fastTiming)
	avatar := NewNotifier(db, store.NamespaceAvatar, nil, fastTiming)
	t.Cleanup(level.Close)
	t.Cleanup(avatar.Close)

	assert.True(t, level.Observe(45))
	waitForIdle(t, level)

	// The avatar instance has its own seen set and fires for the same bucket.
	assert.True(t, avatar.Observe(45))
	waitForIdle(t, avatar)
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "Supernova", StageLabel(store.NamespaceLevel, 5))
	assert.Equal(t, "Hatchling", StageLabel(store.NamespaceAvatar, 1))
	assert.Equal(t, "", StageLabel(store.NamespaceAvatar, 0))
	assert.Equal(t, "", StageLabel("unknown", 3))
}

func TestOverallCompletion(t *testing.T) {
	progress := map[int64]api.ChapterProgress{
		1: {Chapters: []api.ChapterState{
			{IsCompleted: true},
			{IsCompleted: false, ProgressPercentage: 85}, // counts via >= 80
			{IsCompleted: false, ProgressPercentage: 50},
		}},
		2: {Chapters: []api.ChapterState{
			{IsCompleted: false, ProgressPercentage: 10},
		}},
	}

	assert.InDelta(t, 50.0, OverallCompletion(progress), 0.001)
	assert.Equal(t, 0.0, OverallCompletion(nil))
}
