// Package config loads game settings from defaults, a YAML file and the
// environment, and watches the file for edits.
package config

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of an environment variable or a fallback if not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// envFloat parses key as a float when set.
func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return &EnvError{Key: key, Value: v, Err: err}
	}
	*dst = f
	return nil
}

// envInt parses key as an int when set.
func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &EnvError{Key: key, Value: v, Err: err}
	}
	*dst = n
	return nil
}

// envUint parses key as an unsigned 64-bit int when set.
func envUint(key string, dst *uint64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return &EnvError{Key: key, Value: v, Err: err}
	}
	*dst = n
	return nil
}

// envBool parses key as a bool when set.
func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return &EnvError{Key: key, Value: v, Err: err}
	}
	*dst = b
	return nil
}

// envDuration parses key as a Go duration string when set.
func envDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return &EnvError{Key: key, Value: v, Err: err}
	}
	*dst = d
	return nil
}

// envString copies key into dst when set.
func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// EnvError reports an environment variable that could not be parsed.
type EnvError struct {
	Key   string
	Value string
	Err   error
}

func (e *EnvError) Error() string {
	return "config: " + e.Key + "=" + strconv.Quote(e.Value) + ": " + e.Err.Error()
}

func (e *EnvError) Unwrap() error {
	return e.Err
}
