package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonebridge-systems/focuspulse/internal/bridge"
	"github.com/stonebridge-systems/focuspulse/internal/config"
	"github.com/stonebridge-systems/focuspulse/internal/evolve"
	"github.com/stonebridge-systems/focuspulse/internal/output"
	"github.com/stonebridge-systems/focuspulse/internal/skills"
	"github.com/stonebridge-systems/focuspulse/internal/store"
)

var (
	watchDaemon   bool
	watchInterval string
	watchStop     bool
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll activity data and celebrate milestones",
	Long: `Run the energy poll loop. Every interval the engine refreshes today's
energy from the backend, archives finished days, expires reward mode, and
checks learning progress for evolution milestones. New milestones trigger a
one-time celebration and a desktop notification.

Examples:
  focuspulse watch                  # run in foreground (ctrl-c to stop)
  focuspulse watch --daemon         # run in background, write PID file
  focuspulse watch --interval 5m    # poll every 5 minutes (default: 1m)
  focuspulse watch --stop           # stop the background daemon`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Poll interval as duration string (e.g. 5m); defaults to config")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	rootCmd.AddCommand(watchCmd)
}

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon()
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	interval := time.Duration(env.cfg.PollIntervalSec) * time.Second
	if watchInterval != "" {
		interval, err = time.ParseDuration(watchInterval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
		}
	}
	if interval < 10*time.Second {
		return fmt.Errorf("interval must be at least 10s, got %s", interval)
	}

	if watchDaemon {
		return runDaemon(env, interval)
	}
	return runForeground(env, interval)
}

// celebrationPresenter drives the terminal rendering of a milestone
// presentation sequence and fires the desktop notification.
type celebrationPresenter struct {
	logf func(format string, args ...any)
}

func (p *celebrationPresenter) ShowVisual(pr evolve.Presentation) {
	p.logf("%s", output.StyleHeader.Render(fmt.Sprintf("★ Stage %d reached!", pr.Bucket)))
}

func (p *celebrationPresenter) ShowLabel(pr evolve.Presentation) {
	p.logf("%s", output.StyleBold.Render(fmt.Sprintf("  %s", pr.Label)))
	_ = bridge.Notify("Milestone reached", fmt.Sprintf("%s — stage %d", pr.Label, pr.Bucket))
}

func (p *celebrationPresenter) FadeOut(evolve.Presentation) {}

// watchLoop is the shared poll loop for foreground and daemon modes.
func watchLoop(ctx context.Context, env *appEnv, interval time.Duration, logf func(string, ...any)) error {
	presenter := &celebrationPresenter{logf: logf}

	levelNotifier := evolve.NewNotifier(env.db, store.NamespaceLevel, presenter, evolve.Timing{})
	avatarNotifier := evolve.NewNotifier(env.db, store.NamespaceAvatar, presenter, evolve.Timing{})
	defer levelNotifier.Close()
	defer avatarNotifier.Close()
	levelNotifier.SetLogf(logVerbose)
	avatarNotifier.SetLogf(logVerbose)

	tick := func() {
		tickCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		env.engine.Tick(tickCtx)
		checkMilestones(tickCtx, env, levelNotifier, avatarNotifier)

		if !watchQuiet {
			snap := env.engine.Current()
			logf("[%s] energy %d (week avg %d)",
				time.Now().Format("15:04:05"), snap.XP, env.engine.WeekAverage())
		}
	}

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tick()
		}
	}
}

// checkMilestones refreshes study-plan progress and evaluates both evolution
// notifiers. Fetch failures are logged and skipped; milestones wait for the
// next tick.
func checkMilestones(ctx context.Context, env *appEnv, level, avatar *evolve.Notifier) {
	plans, err := env.client.StudyPlans(ctx)
	if err != nil {
		logVerbose("study plan fetch failed: %v", err)
		return
	}

	// Overall mastery milestone: chapter completion across all plans.
	ids := make([]int64, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	progress, err := env.client.AllPlanProgress(ctx, ids)
	if err == nil && len(progress) > 0 {
		level.Observe(evolve.OverallCompletion(progress))
	}

	// Avatar milestone: average skill completion over the taxonomy.
	bySkill := skills.ComputeSkillProgress(plans, skills.Taxonomy())
	if len(bySkill) > 0 {
		sum := 0
		for _, sp := range bySkill {
			sum += sp.CompletionPct
		}
		avatar.Observe(float64(sum) / float64(len(bySkill)))
	}
}

// runForeground runs the watch loop with live terminal output.
func runForeground(env *appEnv, interval time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	go func() {
		<-sigCh
		cancel()
	}()

	if !watchQuiet {
		fmt.Printf("focuspulse watching... (polling every %s)\n", interval)
	}

	err := watchLoop(ctx, env, interval, func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	})
	if err == context.Canceled {
		if !watchQuiet {
			fmt.Println("\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon sets up PID and log files, then runs the watch loop. The actual
// backgrounding should be done by the caller (nohup, &, etc.) since Go
// cannot reliably fork.
func runDaemon(env *appEnv, interval time.Duration) error {
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	// Check for existing daemon.
	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file, remove it.
		_ = os.Remove(pidFilePath())
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	go func() {
		<-sigCh
		cancel()
	}()

	writeLog(logFile, "focuspulse daemon started (PID %d, interval %s)", pid, interval)

	err = watchLoop(ctx, env, interval, func(format string, args ...any) {
		writeLog(logFile, format, args...)
	})
	if err == context.Canceled {
		writeLog(logFile, "daemon stopped")
		return nil
	}
	return err
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(data))
}

// writeLog writes a timestamped line to the log file.
func writeLog(f *os.File, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(f, "[%s] %s\n", timestamp, msg)
}
