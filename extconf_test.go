package extconf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/arc-language/extconf/pkg/core"
)

// fixture lays out a search root with both libraries and headers, a PATH
// directory with the generator tools, and a source directory
type fixture struct {
	cfg    *Config
	base   string
	bin    string
	getenv func(string) string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fixture uses unix executables")
	}
	base := t.TempDir()
	prefix := filepath.Join(base, "opt")
	bin := filepath.Join(base, "bin")
	src := filepath.Join(base, "ext")

	write := func(path string, mode os.FileMode) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), mode); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(prefix, "lib", "libxml2.a"), 0o644)
	write(filepath.Join(prefix, "lib", "libxslt.a"), 0o644)
	write(filepath.Join(prefix, "include", "libxml2", "libxml", "xmlversion.h"), 0o644)
	write(filepath.Join(prefix, "include", "libxslt", "xslt.h"), 0o644)
	write(filepath.Join(bin, "racc"), 0o755)
	write(filepath.Join(bin, "frex"), 0o755)
	write(filepath.Join(src, "native.c"), 0o644)

	cfg := DefaultConfig()
	cfg.Target = "x86_64-linux"
	cfg.Root = base
	cfg.SourceDir = src
	cfg.OutputDir = src
	cfg.SearchRoots = []string{prefix}
	cfg.SymbolProbe = core.SymbolProbeNone

	vars := map[string]string{"PATH": bin, "HOME": base, "ARCHFLAGS": "-arch x86_64"}
	return &fixture{
		cfg:    cfg,
		base:   base,
		bin:    bin,
		getenv: func(k string) string { return vars[k] },
	}
}

func TestConfigureWritesMakefile(t *testing.T) {
	f := newFixture(t)
	res, err := Configure(f.cfg, Options{Getenv: f.getenv})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	data, err := os.ReadFile(res.Makefile)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"LIBS = -lxml2 -lxslt\n",
		"ARCH_FLAG = -arch x86_64\n",
		"SRCS = native.c\n",
		"TARGET_PREFIX = /nokogiri\n",
		"srcdir = .\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Makefile missing %q", want)
		}
	}
	if _, err := os.Stat(res.LogFile); err != nil {
		t.Errorf("probe log: %v", err)
	}
	if len(res.Executables) != 2 {
		t.Errorf("executables = %d", len(res.Executables))
	}
}

func TestConfigureMissingToolWritesNothing(t *testing.T) {
	f := newFixture(t)
	if err := os.Remove(filepath.Join(f.bin, "frex")); err != nil {
		t.Fatal(err)
	}

	_, err := Configure(f.cfg, Options{Getenv: f.getenv})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("err = %v, want ErrExecutableNotFound", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Name != "frex" {
		t.Errorf("error should name frex: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(f.cfg.OutputDir, "Makefile")); !os.IsNotExist(statErr) {
		t.Error("Makefile written despite failure")
	}
}

func TestConfigureSeparateOutputDir(t *testing.T) {
	f := newFixture(t)
	f.cfg.OutputDir = filepath.Join(f.base, "build")
	if err := os.Mkdir(f.cfg.OutputDir, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Configure(f.cfg, Options{Getenv: f.getenv})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := res.Descriptor.SourceDir(); got != "../ext" {
		t.Errorf("SourceDir = %q, want ../ext", got)
	}
	data, err := os.ReadFile(res.Makefile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "srcdir = ../ext\n") {
		t.Errorf("Makefile should point srcdir at the sources:\n%s", data)
	}
}

func TestConfigureMissingOutputDir(t *testing.T) {
	f := newFixture(t)
	f.cfg.OutputDir = filepath.Join(f.base, "missing")

	_, err := Configure(f.cfg, Options{Getenv: f.getenv})
	if !errors.Is(err, ErrDescriptorWriteFailed) {
		t.Fatalf("err = %v, want ErrDescriptorWriteFailed", err)
	}
}

func TestConfigureMissingOutputDirReportsDependency(t *testing.T) {
	f := newFixture(t)
	f.cfg.OutputDir = filepath.Join(f.base, "missing")
	if err := os.Remove(filepath.Join(f.bin, "racc")); err != nil {
		t.Fatal(err)
	}

	_, err := Configure(f.cfg, Options{Getenv: f.getenv})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("err = %v, want ErrExecutableNotFound", err)
	}
}

func TestConfigureDryRun(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	res, err := Configure(f.cfg, Options{Getenv: f.getenv, DryRun: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if res.Makefile != "" || res.LogFile != "" {
		t.Errorf("dry run reported files: %+v", res)
	}
	if !strings.Contains(buf.String(), "LIBS = -lxml2 -lxslt") {
		t.Errorf("dry run output:\n%s", buf.String())
	}
	if _, err := os.Stat(filepath.Join(f.cfg.OutputDir, "Makefile")); !os.IsNotExist(err) {
		t.Error("dry run wrote a Makefile")
	}
}

func TestConfigureDebugLog(t *testing.T) {
	f := newFixture(t)
	f.cfg.Debug = true
	var debug bytes.Buffer
	if _, err := Configure(f.cfg, Options{Getenv: f.getenv, Debug: &debug}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(debug.String(), "checking for xmlParseDoc() in -lxml2") {
		t.Errorf("debug output:\n%s", debug.String())
	}
}

func TestConfigureRejectsBadProbe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SymbolProbe = "nm"
	if _, err := Configure(cfg, Options{}); err == nil {
		t.Error("expected validation error")
	}
}
