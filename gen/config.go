package gen

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/syssam/regen/registry"
	"github.com/syssam/regen/rewriter"
)

// Mode selects what the writer does with a rewritten file.
type Mode int

const (
	// ModeWrite replaces files whose content changed.
	ModeWrite Mode = iota
	// ModeCheck writes nothing and fails with a StaleError when any file
	// would change.
	ModeCheck
	// ModeDryRun writes nothing and logs the files that would change.
	ModeDryRun
)

var modeNames = [...]string{
	ModeWrite:  "write",
	ModeCheck:  "check",
	ModeDryRun: "dry-run",
}

// String returns the mode name.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, NewConfigError("Mode", s, "unknown mode; use write, check, or dry-run")
}

// Target is a source file together with the rewriters that own its
// generated regions. Rewriters of one target are never shared with another
// target, since the writer processes targets concurrently.
type Target struct {
	File      string
	Rewriters []rewriter.Rewriter
}

// Mirror describes the optional Go file that lists registry entries in
// protocol order.
type Mirror struct {
	Access     *registry.Access
	Dir        string
	Package    string
	Registries []registry.Location // all registries when empty
}

// Config holds everything a generation run needs.
type Config struct {
	// Root is the directory relative target paths are resolved against.
	Root string
	// Version is written as the @GeneratedFrom line of every region.
	Version string
	Targets []Target
	// Workers bounds the number of files rewritten in parallel.
	Workers int
	Mode    Mode
	Mirror  *Mirror
}

// Path resolves a target file against Root.
func (c *Config) Path(file string) string {
	if filepath.IsAbs(file) || c.Root == "" {
		return file
	}
	return filepath.Join(c.Root, file)
}

// workers returns the effective worker count.
func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Validate checks that the configuration describes a runnable job.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 && c.Mirror == nil {
		return NewConfigError("Targets", nil, "nothing to generate")
	}
	if c.Mode < ModeWrite || c.Mode > ModeDryRun {
		return NewConfigError("Mode", c.Mode, "unknown mode")
	}
	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if t.File == "" {
			return NewConfigError("Targets", nil, "target file cannot be empty")
		}
		p := filepath.Clean(c.Path(t.File))
		if seen[p] {
			return NewConfigError("Targets", t.File, "file listed twice; merge its rewriters into one target")
		}
		seen[p] = true
		if len(t.Rewriters) == 0 {
			return NewConfigError("Targets", t.File, "target has no rewriters")
		}
		for _, r := range t.Rewriters {
			if r == nil {
				return NewConfigError("Targets", t.File, "rewriter cannot be nil")
			}
		}
	}
	if m := c.Mirror; m != nil {
		if m.Access == nil {
			return NewConfigError("Mirror", nil, "mirror needs registries")
		}
		if m.Dir == "" {
			return NewConfigError("Mirror", nil, "mirror directory cannot be empty")
		}
	}
	return nil
}
