package app

import (
	"fmt"
	"os"
	"time"

	"github.com/stonebridge-systems/focuspulse/internal/api"
	"github.com/stonebridge-systems/focuspulse/internal/bridge"
	"github.com/stonebridge-systems/focuspulse/internal/config"
	"github.com/stonebridge-systems/focuspulse/internal/energy"
	"github.com/stonebridge-systems/focuspulse/internal/store"
)

// appEnv bundles the wired components commands operate on.
type appEnv struct {
	cfg    *config.Config
	db     *store.DB
	client *api.Client
	bcast  *bridge.Bridge
	engine *energy.Engine
	close  func()
}

// buildEnv opens the local store and wires the engine to the API client and
// companion bridge.
func buildEnv(cfg *config.Config) (*appEnv, error) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	client := api.New(cfg.APIBaseURL, cfg.APIToken)
	bcast := bridge.New(cfg.BridgeURL, logVerbose)

	engine := energy.New(db, client, energy.Options{
		ProductiveWeight:  cfg.Energy.ProductiveWeight,
		NeutralWeight:     cfg.Energy.NeutralWeight,
		DistractingWeight: cfg.Energy.DistractingWeight,
		RewardThreshold:   cfg.RewardThreshold,
		RewardDuration:    time.Duration(cfg.RewardDurationMin) * time.Minute,
		PollInterval:      time.Duration(cfg.PollIntervalSec) * time.Second,
		Bridge:            bcast,
		Logf:              logVerbose,
	})

	return &appEnv{
		cfg:    cfg,
		db:     db,
		client: client,
		bcast:  bcast,
		engine: engine,
		close: func() {
			engine.Close()
			bcast.Flush()
			_ = db.Close()
		},
	}, nil
}

// logVerbose writes engine diagnostics to stderr when --verbose is set.
func logVerbose(format string, args ...any) {
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "focuspulse: "+format+"\n", args...)
	}
}
