// Package config carries compile-wide constants and the jsasta.yaml
// project file format.
package config

// Version is the compiler version, set at build time by the release
// script via -ldflags, or left at this default for a dev build.
var Version = "0.1.0"

const SourceFileExt = ".jsa"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".jsa"}

// TrimSourceExt removes a recognized source extension from a filename,
// returning the original string unchanged if none matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Builtin namespace names recognized after an `@` in an import path.
const (
	BuiltinIO    = "io"
	BuiltinTest  = "test"
	BuiltinDebug = "debug"
	BuiltinMath  = "math"
)

// BuiltinNamespaces lists every namespace the module loader resolves
// without touching the filesystem.
var BuiltinNamespaces = []string{BuiltinIO, BuiltinTest, BuiltinDebug, BuiltinMath}

// MaxConstEvalIterations bounds the Pass-0 collection sweep (§4.6).
const MaxConstEvalIterations = 100

// MaxConstEvalDepth bounds const-expression recursion (§4.6).
const MaxConstEvalDepth = 100

// MaxFixedPointIterations bounds the passes 2-5 outer loop (§4.7, P7).
const MaxFixedPointIterations = 100
