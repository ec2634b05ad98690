//go:build !ios && !android && (amd64 || arm64)

// Package platform provides platform detection for comptr.
// It determines which component runtime, if any, the host provides.
package platform

import "runtime"

// HasComRuntime indicates whether the operating system ships a component
// runtime (ole32) that CoCreateInstance can be resolved from.
const HasComRuntime = runtime.GOOS == "windows"

// RuntimeLibrary is the base name of the system component runtime.
// It is empty when the host has none.
var RuntimeLibrary string

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
		RuntimeLibrary = "ole32"
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// FormatLibraryName returns the platform-specific filename for a library
// base name.
//
// Examples:
//   - Linux:   FormatLibraryName("comrt") -> "libcomrt.so"
//   - macOS:   FormatLibraryName("comrt") -> "libcomrt.dylib"
//   - Windows: FormatLibraryName("ole32") -> "ole32.dll"
func FormatLibraryName(name string) string {
	return LibraryPrefix + name + LibraryExtension
}
