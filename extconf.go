// extconf.go
package extconf

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/arc-language/extconf/pkg/configure"
	"github.com/arc-language/extconf/pkg/core"
	"github.com/arc-language/extconf/pkg/cross"
	"github.com/arc-language/extconf/pkg/env"
	"github.com/arc-language/extconf/pkg/makefile"
	"github.com/arc-language/extconf/pkg/platform"
	"github.com/arc-language/extconf/pkg/registry"
)

// Re-export core types for convenience
type (
	Config                = core.Config
	Requirements          = core.Requirements
	LibraryRequirement    = core.LibraryRequirement
	HeaderRequirement     = core.HeaderRequirement
	ExecutableRequirement = core.ExecutableRequirement
	Descriptor            = makefile.Descriptor
	State                 = configure.State
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// LoadConfig reads an extconf.yaml; see core.LoadConfig
func LoadConfig(path string) (*Config, error) {
	return core.LoadConfig(path)
}

// Options adjust how a run touches the host. The zero value uses the
// process environment and writes the Makefile into the output directory.
type Options struct {
	Getenv       func(string) string // nil uses os.Getenv
	Runner       platform.Runner     // Runs `uname -p`; nil uses the mage shell helper
	Requirements *Requirements       // nil uses core.DefaultRequirements
	DryRun       io.Writer           // When set, the Makefile is rendered here and nothing is written
	Debug        io.Writer           // Receives probe log lines when Config.Debug is set
}

// Result describes a successful run
type Result struct {
	Descriptor  *Descriptor
	Platform    platform.Platform
	Libraries   []*env.Library
	Headers     []*env.Header
	Executables []*env.Executable
	Trail       []State
	Makefile    string // Path written, empty on a dry run
	LogFile     string // Probe log path, empty when disabled
}

// Configure probes the host for every requirement and emits the Makefile.
// It stops at the first missing dependency; the returned error wraps one
// of the Err* sentinels and no Makefile is written.
func Configure(cfg *Config, opts Options) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	snap := env.Capture(opts.Getenv)

	symbols, err := env.NewSymbolChecker(cfg.SymbolProbe)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	logger, closeLog := openLog(cfg, opts, res)
	defer closeLog()

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	e := env.New(root, snap, symbols, logger)
	e.Roots = cfg.SearchRoots

	sources, err := makefile.ListSources(cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	srcdir, err := sourceDirFrom(cfg.OutputDir, cfg.SourceDir)
	if err != nil {
		return nil, err
	}

	reqs := core.DefaultRequirements()
	if opts.Requirements != nil {
		reqs = *opts.Requirements
	}

	var emitter configure.Emitter
	if opts.DryRun != nil {
		emitter = makefile.StreamEmitter{W: opts.DryRun}
	} else {
		fe := makefile.FileEmitter{Dir: cfg.OutputDir}
		emitter = fe
		res.Makefile = fe.Path()
	}

	hints, err := hintsFor(cfg)
	if err != nil {
		return nil, err
	}

	agg := configure.New(configure.Options{
		Target:       cfg.Target,
		ArchOverride: snap.ArchFlags,
		Runner:       opts.Runner,
		Requirements: reqs,
		TargetName:   cfg.TargetName,
		Sources:      sources,
		SourceDir:    srcdir,
		Prober:       e,
		Emitter:      emitter,
		Hints:        hints,
		Logger:       logger,
	})

	d, err := agg.Run()
	res.Trail = agg.Trail()
	if err != nil {
		return nil, err
	}

	res.Descriptor = d
	res.Platform = agg.Platform()
	res.Libraries = agg.Libraries()
	res.Headers = agg.Headers()
	res.Executables = agg.Executables()
	return res, nil
}

// hostHints resolves install hints for the host's package manager
type hostHints struct {
	reg     *registry.Registry
	backend string
}

func (h hostHints) Hint(pkg string) string {
	return h.reg.Hint(pkg, h.backend)
}

// crossHints points at the vendored bundles when building for windows from elsewhere
type crossHints struct{}

func (crossHints) Hint(pkg string) string {
	return "unpack the win32 bundle with: extconf cross unpack <bundle.tar.xz>"
}

func hintsFor(cfg *Config) (configure.Hinter, error) {
	if platform.Detect(cfg.Target) == platform.WindowsLike && runtime.GOOS != "windows" {
		return crossHints{}, nil
	}
	reg, err := registry.Load(cfg.Registry)
	if err != nil {
		return nil, err
	}
	return hostHints{reg: reg, backend: registry.DetectBackend(registry.Host{GOOS: runtime.GOOS})}, nil
}

// sourceDirFrom returns the source dir as make sees it from the output dir
func sourceDirFrom(outputDir, sourceDir string) (string, error) {
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output dir: %w", err)
	}
	src, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("resolving source dir: %w", err)
	}
	if rel, err := filepath.Rel(out, src); err == nil {
		return rel, nil
	}
	return src, nil
}

// openLog sets up the probe log: a file in the output directory (skipped on
// dry runs) plus the debug writer when debugging. A log file that cannot be
// created is dropped; the run goes on and any unwritable output directory
// is reported when the Makefile is written.
func openLog(cfg *Config, opts Options, res *Result) (*log.Logger, func()) {
	var sinks []io.Writer
	closeFn := func() {}

	var logErr error
	if cfg.LogFile != "" && opts.DryRun == nil {
		path := filepath.Join(cfg.OutputDir, cfg.LogFile)
		if f, err := os.Create(path); err != nil {
			logErr = err
		} else {
			sinks = append(sinks, f)
			closeFn = func() { f.Close() }
			res.LogFile = path
		}
	}
	if cfg.Debug {
		w := opts.Debug
		if w == nil {
			w = os.Stdout
		}
		sinks = append(sinks, w)
	}

	if len(sinks) == 0 {
		return log.New(io.Discard, "", 0), closeFn
	}
	logger := log.New(io.MultiWriter(sinks...), "[extconf] ", log.LstdFlags)
	if logErr != nil {
		logger.Printf("no log file: %v", logErr)
	}
	return logger, closeFn
}

// UnpackCross extracts a vendored cross-compilation bundle into the cross
// directory under cfg.Root
func UnpackCross(cfg *Config, bundle string, logger *log.Logger) (cross.Stats, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return cross.NewUnpacker(cfg.Root, logger).UnpackFile(bundle)
}
