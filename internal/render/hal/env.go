package hal

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/gogpu/gputypes"
)

// Env holds the graphics overrides read from the environment.
type Env struct {
	Backends        string `env:"PHANTOM_GRAPHICS_BACKENDS"`
	AdapterName     string `env:"PHANTOM_ADAPTER_NAME"`
	PowerPreference string `env:"PHANTOM_POWER_PREFERENCE" envDefault:"high"`
}

// LoadEnv reads the graphics overrides from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse graphics environment: %w", err)
	}
	return e, nil
}

// BackendSet returns the selected backends, all of them when unset.
func (e Env) BackendSet() (Backends, error) {
	return ParseBackends(e.Backends)
}

// Power returns the requested power preference.
func (e Env) Power() (gputypes.PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(e.PowerPreference)) {
	case "", "high", "high-performance":
		return gputypes.PowerPreferenceHighPerformance, nil
	case "low", "low-power":
		return gputypes.PowerPreferenceLowPower, nil
	default:
		return 0, fmt.Errorf("unknown power preference %q", e.PowerPreference)
	}
}
