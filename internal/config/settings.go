package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvSettingsFile      = "GLASTEROIDS_SETTINGS"
	EnvWorldWidth        = "GLASTEROIDS_WORLD_WIDTH"
	EnvWorldHeight       = "GLASTEROIDS_WORLD_HEIGHT"
	EnvStep              = "GLASTEROIDS_STEP"
	EnvSeed              = "GLASTEROIDS_SEED"
	EnvStartingHealth    = "GLASTEROIDS_STARTING_HEALTH"
	EnvStarCount         = "GLASTEROIDS_STAR_COUNT"
	EnvAsteroidsPerLevel = "GLASTEROIDS_ASTEROIDS_PER_LEVEL"
	EnvSpatialGrid       = "GLASTEROIDS_SPATIAL_GRID"
	EnvSpawnShield       = "GLASTEROIDS_SPAWN_SHIELD"
	EnvAudio             = "GLASTEROIDS_AUDIO"
	EnvAudioVolume       = "GLASTEROIDS_AUDIO_VOLUME"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
)

// Settings is everything a host can tune without recompiling.
type Settings struct {
	World      WorldSettings      `yaml:"world"`
	Simulation SimulationSettings `yaml:"simulation"`
	Audio      AudioSettings      `yaml:"audio"`
	Log        LogSettings        `yaml:"log"`
}

// WorldSettings sizes the play area in meters.
type WorldSettings struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SimulationSettings tunes the fixed-step simulation.
type SimulationSettings struct {
	Step              time.Duration `yaml:"step"`
	Seed              uint64        `yaml:"seed"` // 0 picks a random seed
	StartingHealth    int           `yaml:"starting_health"`
	StarCount         int           `yaml:"star_count"`
	AsteroidsPerLevel int           `yaml:"asteroids_per_level"`
	SpatialGrid       bool          `yaml:"spatial_grid"`
	SpawnShield       time.Duration `yaml:"spawn_shield"` // Ship invulnerability after a level load
}

// AudioSettings controls the sound cues.
type AudioSettings struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Base-2 gain; 0 is unchanged, -1 is half
}

// LogSettings selects logger level and output format.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json", "logfmt"}
)

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		World: WorldSettings{
			Width:  144,
			Height: 70,
		},
		Simulation: SimulationSettings{
			Step:              10 * time.Millisecond,
			StartingHealth:    3,
			StarCount:         100,
			AsteroidsPerLevel: 2,
			SpatialGrid:       true,
			SpawnShield:       3 * time.Second,
		},
		Audio: AudioSettings{
			Enabled: true,
			Volume:  -1,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML settings file on top of the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return s, nil
}

// Resolve builds the effective settings: defaults, then the file named by
// GLASTEROIDS_SETTINGS if any, then individual environment overrides.
// The result is validated.
func Resolve() (Settings, string, error) {
	path := GetEnv(EnvSettingsFile, "")
	s := Default()
	if path != "" {
		var err error
		if s, err = Load(path); err != nil {
			return s, path, err
		}
	}
	if err := s.ApplyEnv(); err != nil {
		return s, path, err
	}
	return s, path, s.Validate()
}

// ApplyEnv overrides fields from GLASTEROIDS_* and LOG_* variables.
// Every unparsable variable is reported.
func (s *Settings) ApplyEnv() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(envFloat(EnvWorldWidth, &s.World.Width))
	add(envFloat(EnvWorldHeight, &s.World.Height))
	add(envDuration(EnvStep, &s.Simulation.Step))
	add(envUint(EnvSeed, &s.Simulation.Seed))
	add(envInt(EnvStartingHealth, &s.Simulation.StartingHealth))
	add(envInt(EnvStarCount, &s.Simulation.StarCount))
	add(envInt(EnvAsteroidsPerLevel, &s.Simulation.AsteroidsPerLevel))
	add(envBool(EnvSpatialGrid, &s.Simulation.SpatialGrid))
	add(envDuration(EnvSpawnShield, &s.Simulation.SpawnShield))
	add(envBool(EnvAudio, &s.Audio.Enabled))
	add(envFloat(EnvAudioVolume, &s.Audio.Volume))
	envString(EnvLogLevel, &s.Log.Level)
	envString(EnvLogFormat, &s.Log.Format)

	return errors.Join(errs...)
}

// Validate reports every field that is out of range.
func (s Settings) Validate() error {
	var errs []error
	if s.World.Width <= 0 || s.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %vx%v must be positive", s.World.Width, s.World.Height))
	}
	if s.Simulation.Step <= 0 {
		errs = append(errs, fmt.Errorf("simulation step %v must be positive", s.Simulation.Step))
	}
	if s.Simulation.StartingHealth < 1 {
		errs = append(errs, fmt.Errorf("starting health %d must be at least 1", s.Simulation.StartingHealth))
	}
	if s.Simulation.StarCount < 0 {
		errs = append(errs, fmt.Errorf("star count %d must not be negative", s.Simulation.StarCount))
	}
	if s.Simulation.AsteroidsPerLevel < 1 {
		errs = append(errs, fmt.Errorf("asteroids per level %d must be at least 1", s.Simulation.AsteroidsPerLevel))
	}
	if s.Simulation.SpawnShield < 0 {
		errs = append(errs, fmt.Errorf("spawn shield %v must not be negative", s.Simulation.SpawnShield))
	}
	if !slices.Contains(logLevels, s.Log.Level) {
		errs = append(errs, fmt.Errorf("log level %q not one of %v", s.Log.Level, logLevels))
	}
	if !slices.Contains(logFormats, s.Log.Format) {
		errs = append(errs, fmt.Errorf("log format %q not one of %v", s.Log.Format, logFormats))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid settings: %w", errors.Join(errs...))
}
