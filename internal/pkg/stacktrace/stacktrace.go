// Package stacktrace trims goroutine dumps down to this module's frames so
// panic logs stay readable.
package stacktrace

import "strings"

const internalDir = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a debug.Stack dump, in call order.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.SplitSeq(string(stack), "\n") {
		line = strings.TrimSpace(line)
		dot := strings.Index(line, ".go:")
		at := strings.Index(line, internalDir)
		if dot == -1 || at == -1 || at > dot {
			continue
		}

		loc := line[at+1:]
		if sp := strings.IndexByte(loc, ' '); sp != -1 {
			loc = loc[:sp]
		}
		paths = append(paths, loc)
	}
	return paths
}
