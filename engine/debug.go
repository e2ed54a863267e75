package engine

import "math"

var EnableDebug = true

// EnableAsserts turns contract violations (NaN metrics, rejected inputs)
// into panics instead of warnings. Hosts may switch it off in production.
var EnableAsserts = true

// Debug logs a message if debug mode is enabled.
func Debug(args ...interface{}) {
	if EnableDebug {
		logSink("log", args...)
	}
}

// DebugWarn logs a warning if debug mode is enabled.
func DebugWarn(args ...interface{}) {
	if EnableDebug {
		logSink("warn", args...)
	}
}

// DebugError logs an error. Errors are always emitted.
func DebugError(args ...interface{}) {
	logSink("error", args...)
}

// assertFinite panics on NaN or Inf when asserts are enabled.
func assertFinite(name string, v float64) {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		return
	}
	DebugError(name, "is not finite:", v)
	if EnableAsserts {
		panic("engine: " + name + " is not finite")
	}
}
