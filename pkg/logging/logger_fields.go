package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

// Day labels the simulated day being processed
func Day(name string) Field {
	return String("day", name)
}

// RunID labels log entries with the simulation run identifier
func RunID(id string) Field {
	return String("run_id", id)
}

// Beta records the transmission rate in effect
func Beta(b float64) Field {
	return Float64("beta", b)
}

func NodeCount(n int) Field {
	return Int("nodes", n)
}

func EdgeCount(n int) Field {
	return Int("edges", n)
}

// Infections records a count of new infections for one tick
func Infections(n int) Field {
	return Int("infections", n)
}

func CacheKey(key string) Field {
	return String("cache_key", key)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}
