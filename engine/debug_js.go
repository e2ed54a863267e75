//go:build js
// +build js

package engine

import "github.com/gopherjs/gopherjs/js"

// logSink writes to the browser console.
func logSink(level string, args ...interface{}) {
	js.Global.Get("console").Call(level, args...)
}
