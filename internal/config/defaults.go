// Package config provides configuration loading and defaults for focuspulse.
package config

// DefaultAPIBaseURL is the default dashboard backend endpoint.
const DefaultAPIBaseURL = "http://localhost:8000/api"

// DefaultBridgeURL is the default companion-bridge endpoint for
// fire-and-forget broadcasts (empty disables the bridge).
const DefaultBridgeURL = "http://localhost:8765/bridge"

// DefaultConfigDir is the default location for focuspulse configuration.
const DefaultConfigDir = "~/.config/focuspulse"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "focuspulse.db"

// DefaultPollIntervalSec is how often the energy engine re-fetches the
// productivity summary, in seconds.
const DefaultPollIntervalSec = 60

// DefaultRewardDurationMin is the default reward-mode duration in minutes.
const DefaultRewardDurationMin = 30

// DefaultRewardThreshold is the trailing weekly average energy required to
// activate reward mode.
const DefaultRewardThreshold = 70

// DefaultEnergy holds the default additive energy model weights.
var DefaultEnergy = Energy{
	ProductiveWeight:  0.3,
	NeutralWeight:     0.5,
	DistractingWeight: 2.0,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
