// Package config exposes typed accessors over the service configuration.
//
// Business code depends on the Config interface only; the viper-backed
// implementation lives next to it and reloads the file when it changes.
package config

import (
	"io"
	"time"
)

// DurationConfig reads integer values and scales them into durations.
type DurationConfig interface {
	// GetSecond returns the value for key multiplied by time.Second.
	GetSecond(key string) time.Duration

	// GetMinute returns the value for key multiplied by time.Minute.
	GetMinute(key string) time.Duration
}

// NumberConfig reads numeric values. Missing keys yield zero.
type NumberConfig interface {
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetFloat64(key string) float64
}

// Config defines a set of methods for retrieving configuration values of various types.
type Config interface {
	io.Closer
	DurationConfig
	NumberConfig

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetArray retrieves the value associated with key as a slice of strings.
	// Scalars are stored with format <element1>,<element2>,... and YAML
	// sequences are accepted as-is. Empty elements are dropped.
	GetArray(key string) []string
}
