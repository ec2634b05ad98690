//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the host component runtime (ole32 on Windows)
// and resolves its exported entry points.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/obinnaokechukwu/comptr/internal/platform"
)

// RuntimeEnv names an environment variable that overrides the component
// runtime library, either as a bare name or as a full path.
const RuntimeEnv = "COMPTR_RUNTIME"

// ErrNotLoaded is returned when entry points are requested before Load succeeded.
var ErrNotLoaded = errors.New("comptr: component runtime not loaded")

// ErrLibraryNotFound is returned when the runtime library cannot be found.
var ErrLibraryNotFound = errors.New("comptr: component runtime library not found")

var (
	libRuntime uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

// IsLoaded returns true if the component runtime has been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads the component runtime library.
// It is safe to call multiple times; subsequent calls return the first result.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	name := RuntimeLibraryName()
	if name == "" {
		return fmt.Errorf("%w: %s has no component runtime; set %s", ErrLibraryNotFound, runtime.GOOS, RuntimeEnv)
	}

	lib, err := loadLibrary(name)
	if err != nil {
		return fmt.Errorf("loading component runtime: %w", err)
	}
	libRuntime = lib
	return nil
}

// RuntimeLibraryName returns the library Load will open: the RuntimeEnv
// override if set, otherwise the platform default. A bare override name
// without an extension gets the platform prefix and extension.
func RuntimeLibraryName() string {
	if v := os.Getenv(RuntimeEnv); v != "" {
		if filepath.Base(v) == v && filepath.Ext(v) == "" {
			return platform.FormatLibraryName(v)
		}
		return v
	}
	if !platform.HasComRuntime {
		return ""
	}
	return platform.FormatLibraryName(platform.RuntimeLibrary)
}

// loadLibrary opens name directly if it is a path, otherwise prefers the
// copy FindLibrary locates before letting the system loader find it.
func loadLibrary(name string) (uintptr, error) {
	if filepath.IsAbs(name) {
		lib, err := openLibrary(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, name, err)
		}
		return lib, nil
	}

	found, findErr := FindLibrary(name)
	if findErr == nil {
		if lib, err := openLibrary(found); err == nil {
			return lib, nil
		}
	}

	lib, err := openLibrary(name)
	if err == nil {
		return lib, nil
	}
	if findErr == nil {
		return 0, fmt.Errorf("%w: %s: found %s but could not open it: %v", ErrLibraryNotFound, name, found, err)
	}
	return 0, fmt.Errorf("%w: %s: not in %v: %v", ErrLibraryNotFound, name, LibrarySearchPaths(), err)
}

// FindLibrary searches the library search paths for name and returns the
// first full path that exists.
func FindLibrary(name string) (string, error) {
	for _, searchPath := range LibrarySearchPaths() {
		fullPath := filepath.Join(searchPath, name)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "windows":
		// System directory first so a planted ole32.dll next to the
		// executable is never preferred.
		if root := os.Getenv("SystemRoot"); root != "" {
			paths = append(paths, filepath.Join(root, "System32"))
		}
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}

	case "darwin":
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		paths = append(paths,
			"/opt/homebrew/lib",
			"/usr/local/lib",
		)

	default:
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/local/lib",
			"/usr/lib",
			"/lib",
		)
	}

	return paths
}

// Proc resolves an exported entry point of the component runtime.
func Proc(name string) (uintptr, error) {
	if !IsLoaded() {
		return 0, ErrNotLoaded
	}
	addr, err := lookupSymbol(libRuntime, name)
	if err != nil {
		return 0, fmt.Errorf("comptr: resolving %s: %w", name, err)
	}
	return addr, nil
}
