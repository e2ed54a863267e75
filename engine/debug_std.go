//go:build !js
// +build !js

package engine

import "log"

// logSink writes through the standard logger outside the browser.
func logSink(level string, args ...interface{}) {
	log.Println(append([]interface{}{"[" + level + "]"}, args...)...)
}
