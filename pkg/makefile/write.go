// pkg/makefile/write.go
package makefile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/extconf/pkg/core"
	"github.com/arc-language/extconf/pkg/platform"
)

// DefaultName is the file make reads without -f
const DefaultName = "Makefile"

// Render writes the descriptor as a Makefile. Output depends only on the
// descriptor, so equal descriptors render to identical bytes.
func (d *Descriptor) Render(w io.Writer) error {
	var b strings.Builder

	ccdlflags := "-fPIC"
	if d.variant == platform.WindowsLike {
		ccdlflags = ""
	}

	b.WriteString("# Generated by extconf. Do not edit.\n\n")
	b.WriteString("SHELL = /bin/sh\n\n")

	b.WriteString("# ── Platform ─────────────────────────────────────────────────────────────────\n\n")
	assign(&b, "PLATFORM", string(d.variant))
	assign(&b, "CC", "cc")
	assign(&b, "LDSHARED", "$(CC) -shared")
	assign(&b, "ARCH_FLAG", string(d.arch))
	b.WriteString("\n")

	b.WriteString("# ── Flags ────────────────────────────────────────────────────────────────────\n\n")
	assign(&b, "CFLAGS", strings.Join(d.cflags, " "))
	assign(&b, "CCDLFLAGS", ccdlflags)
	assign(&b, "DEFS", strings.Join(d.defines, " "))
	assign(&b, "INCFLAGS", strings.Join(d.includes, " "))
	assign(&b, "CPPFLAGS", "$(DEFS) -I$(srcdir) $(INCFLAGS)")
	assign(&b, "LDFLAGS", strings.Join(d.libDirs, " "))
	assign(&b, "LIBS", strings.Join(d.libs, " "))
	b.WriteString("\n")

	b.WriteString("# ── Target ───────────────────────────────────────────────────────────────────\n\n")
	assign(&b, "srcdir", d.srcDir)
	assign(&b, "VPATH", "$(srcdir)")
	assign(&b, "TARGET", d.target)
	assign(&b, "TARGET_PREFIX", d.targetPrefix)
	assign(&b, "DLLIB", "$(TARGET).so")
	assign(&b, "SRCS", strings.Join(d.sources, " "))
	assign(&b, "OBJS", strings.Join(d.Objects(), " "))
	b.WriteString("\n")

	b.WriteString("# ── Install ──────────────────────────────────────────────────────────────────\n\n")
	assign(&b, "prefix", "/usr/local")
	assign(&b, "sitearchdir", "$(prefix)/lib/extconf")
	assign(&b, "INSTALL_DIR", "$(DESTDIR)$(sitearchdir)$(TARGET_PREFIX)")
	assign(&b, "INSTALL_PROG", "install -m 0755")
	b.WriteString("\n")

	b.WriteString(`.PHONY: all clean install

all: $(DLLIB)

$(DLLIB): $(OBJS)
	$(LDSHARED) -o $@ $(OBJS) $(LDFLAGS) $(ARCH_FLAG) $(LIBS)

.c.o:
	$(CC) $(CPPFLAGS) $(CFLAGS) $(CCDLFLAGS) $(ARCH_FLAG) -c $< -o $@

clean:
	rm -f $(DLLIB) $(OBJS)

install: $(DLLIB)
	mkdir -p $(INSTALL_DIR)
	$(INSTALL_PROG) $(DLLIB) $(INSTALL_DIR)
`)

	_, err := io.WriteString(w, b.String())
	return err
}

func assign(b *strings.Builder, key, value string) {
	if value == "" {
		fmt.Fprintf(b, "%s =\n", key)
		return
	}
	fmt.Fprintf(b, "%s = %s\n", key, value)
}

// Bytes returns the rendered Makefile
func (d *Descriptor) Bytes() []byte {
	var buf bytes.Buffer
	d.Render(&buf) // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// Write renders d into dir/name. The file is written to a temporary name
// and renamed into place, so a failed write leaves no partial Makefile.
func Write(dir, name string, d *Descriptor) (err error) {
	if name == "" {
		name = DefaultName
	}
	target := filepath.Join(dir, name)

	fail := func(err error) error {
		return &core.Error{
			Op:   "write",
			Name: target,
			Err:  fmt.Errorf("%w: %v", core.ErrDescriptorWriteFailed, err),
		}
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp*")
	if err != nil {
		return fail(err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := d.Render(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fail(err)
	}
	return nil
}

// FileEmitter writes descriptors to Dir/Name
type FileEmitter struct {
	Dir  string
	Name string
}

func (e FileEmitter) Emit(d *Descriptor) error {
	return Write(e.Dir, e.Name, d)
}

// Path returns the file the emitter writes
func (e FileEmitter) Path() string {
	name := e.Name
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(e.Dir, name)
}

// StreamEmitter renders descriptors to W (used for dry runs)
type StreamEmitter struct {
	W io.Writer
}

func (e StreamEmitter) Emit(d *Descriptor) error {
	if err := d.Render(e.W); err != nil {
		return &core.Error{
			Op:  "write",
			Err: fmt.Errorf("%w: %v", core.ErrDescriptorWriteFailed, err),
		}
	}
	return nil
}
