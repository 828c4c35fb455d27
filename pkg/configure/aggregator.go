// pkg/configure/aggregator.go
package configure

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/arc-language/extconf/pkg/core"
	"github.com/arc-language/extconf/pkg/env"
	"github.com/arc-language/extconf/pkg/flags"
	"github.com/arc-language/extconf/pkg/makefile"
	"github.com/arc-language/extconf/pkg/platform"
)

// Prober answers presence queries. *env.Environment is the production
// implementation.
type Prober interface {
	FindLibrary(v platform.Variant, req core.LibraryRequirement) (*env.Library, error)
	FindHeader(v platform.Variant, req core.HeaderRequirement) (*env.Header, error)
	FindExecutable(req core.ExecutableRequirement) (*env.Executable, error)
}

// Emitter consumes the finished descriptor
type Emitter interface {
	Emit(d *makefile.Descriptor) error
}

// Options configure a single run
type Options struct {
	Target       string            // Target identifier, e.g. "mingw32" or "x86_64-linux"
	ArchOverride string            // ARCHFLAGS value; empty means detect
	Runner       platform.Runner   // Runs `uname -p`; nil uses platform.DefaultRunner
	Requirements core.Requirements // Hard requirements, probed in declared order
	TargetName   string            // Extension name, e.g. "nokogiri/native"
	Sources      []string          // C sources listed in the descriptor
	SourceDir    string            // Sources' directory relative to the Makefile
	Prober       Prober            // Required
	Emitter      Emitter           // nil builds the descriptor without writing it
	Hints        Hinter            // Fills install hints on missing libraries and headers
	Logger       *log.Logger       // nil discards
}

// Hinter suggests how to install a missing package (e.g. "libxslt")
type Hinter interface {
	Hint(pkg string) string
}

// Aggregator drives one configuration run through its states
type Aggregator struct {
	opts   Options
	logger *log.Logger

	state State
	trail []State

	platform platform.Platform
	flagSet  flags.FlagSet
	libs     []*env.Library
	headers  []*env.Header
	execs    []*env.Executable
	desc     *makefile.Descriptor
}

// New creates an aggregator in the Init state
func New(opts Options) *Aggregator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Aggregator{
		opts:   opts,
		logger: logger,
		state:  Init,
		trail:  []State{Init},
	}
}

// Run executes every step in order. The first failing step moves the run
// to Aborted and its error is returned; no later step runs and nothing is
// emitted. An aggregator runs once.
func (a *Aggregator) Run() (*makefile.Descriptor, error) {
	if a.state != Init {
		return nil, fmt.Errorf("configure: run already started (state %s)", a.state)
	}
	if a.opts.Prober == nil {
		return nil, fmt.Errorf("configure: no prober")
	}

	steps := []struct {
		state State
		run   func() error
	}{
		{DetectPlatform, a.detectPlatform},
		{SelectFlags, a.selectFlags},
		{ProbeLibraries, a.probeLibraries},
		{ProbeHeaders, a.probeHeaders},
		{ProbeExecutables, a.probeExecutables},
		{Emit, a.emit},
	}

	for _, step := range steps {
		if err := a.enter(step.state); err != nil {
			return nil, err
		}
		if err := step.run(); err != nil {
			a.logger.Printf("%s failed: %v", step.state, err)
			if terr := a.enter(Aborted); terr != nil {
				return nil, fmt.Errorf("%w (%v)", err, terr)
			}
			return nil, err
		}
	}

	if err := a.enter(Done); err != nil {
		return nil, err
	}
	return a.desc, nil
}

func (a *Aggregator) enter(next State) error {
	if err := transition(&a.state, next); err != nil {
		return err
	}
	a.trail = append(a.trail, next)
	return nil
}

func (a *Aggregator) detectPlatform() error {
	arch := platform.ResolveArchFlags(a.opts.ArchOverride, a.opts.Runner)
	a.platform = platform.Platform{
		Target:    a.opts.Target,
		Variant:   platform.Detect(a.opts.Target),
		ArchFlags: arch,
	}
	a.logger.Printf("platform: %s", a.platform.String())
	return nil
}

func (a *Aggregator) selectFlags() error {
	a.flagSet = flags.Select(a.platform.Variant, a.platform.ArchFlags)
	a.logger.Printf("cflags: %s", a.flagSet.String())
	return nil
}

func (a *Aggregator) probeLibraries() error {
	for _, req := range a.opts.Requirements.Libraries {
		lib, err := a.opts.Prober.FindLibrary(a.platform.Variant, req)
		if err != nil {
			return a.withHint(err, req.Package)
		}
		a.libs = append(a.libs, lib)
	}
	return nil
}

func (a *Aggregator) probeHeaders() error {
	for _, req := range a.opts.Requirements.Headers {
		h, err := a.opts.Prober.FindHeader(a.platform.Variant, req)
		if err != nil {
			return a.withHint(err, req.Package)
		}
		a.headers = append(a.headers, h)
	}
	return nil
}

func (a *Aggregator) probeExecutables() error {
	for _, req := range a.opts.Requirements.Executables {
		x, err := a.opts.Prober.FindExecutable(req)
		if err != nil {
			return err
		}
		a.execs = append(a.execs, x)
	}
	return nil
}

// withHint attaches an install hint to a probe error that has none
func (a *Aggregator) withHint(err error, pkg string) error {
	if a.opts.Hints == nil {
		return err
	}
	var cerr *core.Error
	if errors.As(err, &cerr) && cerr.Hint == "" {
		cerr.Hint = a.opts.Hints.Hint(pkg)
	}
	return err
}

func (a *Aggregator) emit() error {
	cf := env.GetCompilerFlags(a.libs, a.headers)

	defines := make([]string, 0, len(a.headers))
	for _, h := range a.headers {
		defines = append(defines, h.Define)
	}

	d := makefile.NewDescriptor(makefile.Params{
		Variant:    a.platform.Variant,
		Flags:      a.flagSet,
		Defines:    defines,
		Includes:   cf.IncludeFlags,
		LibDirs:    cf.LibraryFlags,
		Libs:       cf.LinkFlags,
		TargetName: a.opts.TargetName,
		Sources:    a.opts.Sources,
		SourceDir:  a.opts.SourceDir,
	})

	if a.opts.Emitter != nil {
		if err := a.opts.Emitter.Emit(d); err != nil {
			return err
		}
	}
	a.desc = d
	return nil
}

// State returns the current state
func (a *Aggregator) State() State { return a.state }

// Trail returns every state visited so far, starting with Init
func (a *Aggregator) Trail() []State {
	return append([]State(nil), a.trail...)
}

// Platform returns the detected platform. It is zero before DetectPlatform.
func (a *Aggregator) Platform() platform.Platform { return a.platform }

// Libraries returns the libraries found so far, in probe order
func (a *Aggregator) Libraries() []*env.Library {
	return append([]*env.Library(nil), a.libs...)
}

// Headers returns the headers found so far, in probe order
func (a *Aggregator) Headers() []*env.Header {
	return append([]*env.Header(nil), a.headers...)
}

// Executables returns the executables found so far, in probe order
func (a *Aggregator) Executables() []*env.Executable {
	return append([]*env.Executable(nil), a.execs...)
}
