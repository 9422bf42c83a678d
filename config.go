// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// SpeedCheck is the Off/On/Fast tri-state of §6's speedcheck option.
type SpeedCheck uint8

const (
	SpeedOff SpeedCheck = iota
	SpeedOn
	SpeedFast
)

// UnmarshalYAML implements yaml.Unmarshaler so config files can spell
// speedcheck as a bare string.
func (s *SpeedCheck) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch raw {
	case "off", "Off", "":
		*s = SpeedOff
	case "on", "On":
		*s = SpeedOn
	case "fast", "Fast":
		*s = SpeedFast
	default:
		return fmt.Errorf("litmuscore: unknown speedcheck value %q", raw)
	}
	return nil
}

// DebugFlags are the structured diagnostic switches of §6.
type DebugFlags struct {
	Solver bool `yaml:"solver"`
	RFM    bool `yaml:"rfm"`
}

// Config is the enumerated configuration surface of §6.
type Config struct {
	Verbose            int        `yaml:"verbose"`
	Optace             bool       `yaml:"optace"`
	Unroll             int        `yaml:"unroll"`
	SpeedCheck         SpeedCheck `yaml:"speedcheck"`
	ObservedFinalsOnly bool       `yaml:"observed_finals_only"`
	InitWrites         bool       `yaml:"initwrites"`
	CheckFilter        bool       `yaml:"check_filter"`
	Debug              DebugFlags `yaml:"debug"`

	// Logger receives the §7 verbose warnings. Not part of the YAML
	// surface; left nil to use the package default.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration a bare `enumerate` call uses
// when the caller supplies no overrides: no pruning, no unrolling
// beyond the first pass, coherence/observation filters disabled.
func DefaultConfig() Config {
	return Config{Unroll: 0, SpeedCheck: SpeedOff}
}

// LoadConfig decodes a Config from r (typically a test-harness YAML
// settings file). Unknown keys are rejected to catch config typos
// early rather than silently ignoring them. A decode failure is logged
// at debug level via OnError before the error is returned; the package
// default logger only emits Warn and above, so that record is dropped
// unless the default logger's level is lowered.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	decode := func(k func(struct{}) Resumed) Resumed {
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return ThrowError[error, struct{}](fmt.Errorf("litmuscore: decode config: %w", err))(k)
		}
		return k(struct{}{})
	}
	logAndRethrow := func(err error) Cont[Resumed, struct{}] {
		return func(k func(struct{}) Resumed) Resumed {
			defaultLogger.Debug("config decode failed", "error", err)
			return k(struct{}{})
		}
	}

	outcome := RunError[error, struct{}](OnError[error, struct{}](decode, logAndRethrow))
	if err, failed := outcome.GetLeft(); failed {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile opens path and decodes a Config from it, acquiring and
// releasing the file handle through Bracket so it is closed whether
// decoding succeeds or throws.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("litmuscore: open config: %w", err)
	}

	acquire := Return[Resumed](f)
	release := func(file *os.File) Cont[Resumed, struct{}] {
		return func(k func(struct{}) Resumed) Resumed {
			file.Close()
			return k(struct{}{})
		}
	}
	use := func(file *os.File) Cont[Resumed, Config] {
		return func(k func(Config) Resumed) Resumed {
			cfg, err := LoadConfig(file)
			if err != nil {
				return ThrowError[error, Config](err)(k)
			}
			return k(cfg)
		}
	}

	outcome := Handle(Bracket[error, *os.File, Config](acquire, release, use), HandlerFunc(func(Operation) (Resumed, bool) {
		unhandledEffect("LoadConfigFile")
		return nil, false
	}))
	if err, failed := outcome.GetLeft(); failed {
		return Config{}, err
	}
	cfg, _ := outcome.GetRight()
	return cfg, nil
}
