package env

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/arc-language/extconf/pkg/core"
	"github.com/arc-language/extconf/pkg/platform"
)

var (
	xml2 = core.LibraryRequirement{Name: "xml2", Symbol: "xmlParseDoc", Package: "libxml"}
	xslt = core.LibraryRequirement{Name: "xslt", Symbol: "xsltParseStylesheetDoc", Package: "libxslt"}

	xmlHeader  = core.HeaderRequirement{Name: "libxml/xmlversion.h", Package: "libxml", Subdir: "libxml2"}
	xsltHeader = core.HeaderRequirement{Name: "libxslt/xslt.h", Package: "libxslt"}
)

// symbolSet exports symbol only from the listed paths
type symbolSet map[string]bool

func (s symbolSet) HasSymbol(path, symbol string) (bool, error) {
	return s[path], nil
}

func touch(t *testing.T, path string, mode os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, nil, mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestFindLibraryWindowsCrossDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "cross", "libxml2-2.7.1.win32", "bin")
	touch(t, filepath.Join(dir, "libxml2.dll"), 0o644)

	e := New(root, Snapshot{}, AnySymbol{}, nil)
	lib, err := e.FindLibrary(platform.WindowsLike, xml2)
	if err != nil {
		t.Fatalf("FindLibrary: %v", err)
	}
	if lib.Dir != dir {
		t.Errorf("Dir = %q, want %q", lib.Dir, dir)
	}
	if lib.Link != "-lxml2" || lib.Type != ".dll" || lib.IsStatic {
		t.Errorf("unexpected library %+v", lib)
	}
}

func TestFindLibraryWindowsIgnoresDefaultPath(t *testing.T) {
	sys := t.TempDir()
	touch(t, filepath.Join(sys, "libxml2.dll"), 0o644)

	e := New(t.TempDir(), Snapshot{LibraryPath: []string{sys}}, AnySymbol{}, nil)
	e.DefaultLibraryDirs = []string{sys}

	_, err := e.FindLibrary(platform.WindowsLike, xml2)
	if !errors.Is(err, core.ErrLibraryNotFound) {
		t.Fatalf("err = %v, want ErrLibraryNotFound", err)
	}
}

func TestFindLibraryDefaultPathOrder(t *testing.T) {
	envDir := t.TempDir()
	first := t.TempDir()
	second := t.TempDir()
	touch(t, filepath.Join(second, "libxslt.so.1.1.34"), 0o644)
	linkable := touch(t, filepath.Join(second, "libxslt.so"), 0o644)
	withoutSymbol := touch(t, filepath.Join(first, "libxslt.so"), 0o644)

	e := New("", Snapshot{LibraryPath: []string{envDir}}, nil, nil)
	e.DefaultLibraryDirs = []string{first, second}

	dirs := e.LibraryDirs(platform.UnixLike, "xslt")
	if want := []string{envDir, first, second}; !reflect.DeepEqual(dirs, want) {
		t.Fatalf("LibraryDirs = %v, want %v", dirs, want)
	}

	e.Symbols = symbolSet{linkable: true, withoutSymbol: false}

	lib, err := e.FindLibrary(platform.UnixLike, xslt)
	if runtime.GOOS == "darwin" {
		// .so files are not candidates on darwin hosts
		if err == nil {
			t.Fatalf("expected failure on darwin, got %+v", lib)
		}
		return
	}
	if err != nil {
		t.Fatalf("FindLibrary: %v", err)
	}
	if lib.Path != linkable {
		t.Errorf("Path = %q, want %q", lib.Path, linkable)
	}
	if lib.Type != ".so" {
		t.Errorf("Type = %q", lib.Type)
	}
}

func TestFindLibraryIgnoresVersionedOnly(t *testing.T) {
	dir := t.TempDir()
	versioned := touch(t, filepath.Join(dir, "libxml2.so.2"), 0o644)

	e := New("", Snapshot{}, symbolSet{versioned: true}, nil)
	e.DefaultLibraryDirs = []string{dir}

	lib, err := e.FindLibrary(platform.UnixLike, xml2)
	if !errors.Is(err, core.ErrLibraryNotFound) {
		t.Fatalf("got (%+v, %v), want ErrLibraryNotFound", lib, err)
	}
}

func TestFindLibraryNotFoundMessage(t *testing.T) {
	e := New("", Snapshot{}, AnySymbol{}, nil)
	e.DefaultLibraryDirs = []string{t.TempDir()}

	_, err := e.FindLibrary(platform.UnixLike, xslt)
	if !errors.Is(err, core.ErrLibraryNotFound) {
		t.Fatalf("err = %v, want ErrLibraryNotFound", err)
	}
	for _, want := range []string{"need libxslt", "-lxslt", "xsltParseStylesheetDoc"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("message %q missing %q", err, want)
		}
	}
}

func TestFindHeaderWindowsHome(t *testing.T) {
	home := t.TempDir()
	e := New("", Snapshot{Home: home}, nil, nil)

	_, err := e.FindHeader(platform.WindowsLike, xsltHeader)
	if !errors.Is(err, core.ErrHeaderNotFound) {
		t.Fatalf("err = %v, want ErrHeaderNotFound", err)
	}
	if !strings.Contains(err.Error(), "need libxslt") || !strings.Contains(err.Error(), "libxslt/xslt.h") {
		t.Errorf("message %q should name header and library", err)
	}

	include := filepath.Join(home, "cross", "include")
	touch(t, filepath.Join(include, "libxslt", "xslt.h"), 0o644)

	h, err := e.FindHeader(platform.WindowsLike, xsltHeader)
	if err != nil {
		t.Fatalf("FindHeader: %v", err)
	}
	if h.Dir != include {
		t.Errorf("Dir = %q, want %q", h.Dir, include)
	}
	if h.Define != "-DHAVE_LIBXSLT_XSLT_H" {
		t.Errorf("Define = %q", h.Define)
	}
}

func TestFindHeaderSearchRootSubdir(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, "include", "libxml2")
	touch(t, filepath.Join(want, "libxml", "xmlversion.h"), 0o644)

	e := New("", Snapshot{}, nil, nil)
	e.Roots = []string{root}
	e.Paths = map[platform.Variant]SearchPaths{platform.UnixLike: {}}

	h, err := e.FindHeader(platform.UnixLike, xmlHeader)
	if err != nil {
		t.Fatalf("FindHeader: %v", err)
	}
	if h.Dir != want {
		t.Errorf("Dir = %q, want %q", h.Dir, want)
	}
}

func TestHeaderDirsFromTable(t *testing.T) {
	e := New("/src", Snapshot{Home: "/home/builder"}, nil, nil)

	got := e.HeaderDirs(platform.WindowsLike, "libxslt/xslt.h", "")
	want := []string{filepath.Clean("/home/builder/cross/include")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("windows-like = %v, want %v", got, want)
	}

	got = e.HeaderDirs(platform.UnixLike, "libxslt/xslt.h", "")
	want = []string{filepath.Clean("/usr/include")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unix-like = %v, want %v", got, want)
	}
}

func TestSearchDirsSkipUnsetPlaceholders(t *testing.T) {
	e := New("", Snapshot{}, nil, nil)

	if got := e.HeaderDirs(platform.WindowsLike, "libxslt/xslt.h", ""); len(got) != 0 {
		t.Errorf("HeaderDirs with empty HOME = %v, want none", got)
	}
	if got := e.LibraryDirs(platform.WindowsLike, "xml2"); len(got) != 0 {
		t.Errorf("LibraryDirs with empty ROOT = %v, want none", got)
	}

	// A stray /cross/include on the host must not satisfy the lookup.
	_, err := e.FindHeader(platform.WindowsLike, xsltHeader)
	if !errors.Is(err, core.ErrHeaderNotFound) {
		t.Errorf("err = %v, want ErrHeaderNotFound", err)
	}
}

func TestLibraryDirsNixRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("nix store paths are unix paths")
	}
	root := "/nix/store/s66mzxpvicwk07gjbjfw9izjfa797vsw-libxml2-2.9.14"

	e := New("", Snapshot{}, nil, nil)
	e.Roots = []string{root}
	e.DefaultLibraryDirs = []string{}

	got := e.LibraryDirs(platform.UnixLike, "xml2")
	want := []string{root + "/lib", root + "/lib64"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LibraryDirs = %v, want %v", got, want)
	}
}

func TestLibraryDirsPlainRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "opt")

	e := New("", Snapshot{}, nil, nil)
	e.Roots = []string{root}
	e.DefaultLibraryDirs = []string{}

	got := e.LibraryDirs(platform.UnixLike, "xml2")
	if len(got) == 0 || got[0] != filepath.Join(root, "lib") {
		t.Fatalf("LibraryDirs = %v", got)
	}
	for _, d := range got {
		if d == filepath.Join(root, "usr", "lib") {
			return
		}
	}
	t.Errorf("FHS layout missing usr/lib: %v", got)
}

func TestFindExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not used on windows")
	}
	dir := t.TempDir()
	other := t.TempDir()
	touch(t, filepath.Join(dir, "frex"), 0o644) // not executable
	racc := touch(t, filepath.Join(other, "racc"), 0o755)

	e := New("", Snapshot{Path: []string{dir, other}}, nil, nil)

	exe, err := e.FindExecutable(core.ExecutableRequirement{Name: "racc"})
	if err != nil {
		t.Fatalf("FindExecutable: %v", err)
	}
	if exe.Path != racc {
		t.Errorf("Path = %q, want %q", exe.Path, racc)
	}

	_, err = e.FindExecutable(core.ExecutableRequirement{Name: "frex", Hint: "gem install frex"})
	if !errors.Is(err, core.ErrExecutableNotFound) {
		t.Fatalf("err = %v, want ErrExecutableNotFound", err)
	}
	if !strings.Contains(err.Error(), "gem install frex") {
		t.Errorf("message %q missing hint", err)
	}
}

func TestCapture(t *testing.T) {
	vars := map[string]string{
		"HOME":         "/home/builder",
		"PATH":         strings.Join([]string{"/bin", "/usr/bin"}, string(os.PathListSeparator)),
		"LIBRARY_PATH": "/opt/lib",
		"ARCHFLAGS":    "-arch ppc",
		"PATHEXT":      ".EXE;.BAT",
	}
	snap := Capture(func(k string) string { return vars[k] })

	if snap.Home != "/home/builder" || snap.ArchFlags != "-arch ppc" {
		t.Errorf("snapshot = %+v", snap)
	}
	if !reflect.DeepEqual(snap.Path, []string{"/bin", "/usr/bin"}) {
		t.Errorf("Path = %v", snap.Path)
	}
	if !reflect.DeepEqual(snap.PathExt, []string{".exe", ".bat"}) {
		t.Errorf("PathExt = %v", snap.PathExt)
	}
	if !reflect.DeepEqual(snap.LibraryPath, []string{"/opt/lib"}) {
		t.Errorf("LibraryPath = %v", snap.LibraryPath)
	}
}

func TestGetCompilerFlags(t *testing.T) {
	libs := []*Library{
		{Dir: "/usr/lib", Link: "-lxml2"},
		{Dir: "/usr/lib", Link: "-lxslt"},
	}
	headers := []*Header{
		{Dir: "/usr/include/libxml2"},
		{Dir: "/usr/include"},
	}
	got := GetCompilerFlags(libs, headers)
	want := CompilerFlags{
		IncludeFlags: []string{"-I/usr/include/libxml2", "-I/usr/include"},
		LibraryFlags: []string{"-L/usr/lib"},
		LinkFlags:    []string{"-lxml2", "-lxslt"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNewSymbolChecker(t *testing.T) {
	for strategy, want := range map[string]SymbolChecker{
		"":                     ObjectSymbols{},
		core.SymbolProbeObject: ObjectSymbols{},
		core.SymbolProbeDlopen: DlopenSymbols{},
		core.SymbolProbeNone:   AnySymbol{},
	} {
		got, err := NewSymbolChecker(strategy)
		if err != nil {
			t.Fatalf("%q: %v", strategy, err)
		}
		if reflect.TypeOf(got) != reflect.TypeOf(want) {
			t.Errorf("%q: got %T, want %T", strategy, got, want)
		}
	}
	if _, err := NewSymbolChecker("guess"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
