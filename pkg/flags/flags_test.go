package flags

import (
	"reflect"
	"testing"

	"github.com/arc-language/extconf/pkg/platform"
)

func TestSelectIsPure(t *testing.T) {
	for _, v := range []platform.Variant{platform.WindowsLike, platform.UnixLike} {
		first := Select(v, "-arch i386")
		for i := 0; i < 5; i++ {
			again := Select(v, "-arch i386")
			if first.String() != again.String() || first.Arch() != again.Arch() {
				t.Fatalf("%s: run %d differs: %q vs %q", v, i, first, again)
			}
		}
	}
}

func TestSelectOrder(t *testing.T) {
	for _, v := range []platform.Variant{platform.WindowsLike, platform.UnixLike} {
		got := Select(v, "").CFlags()
		want := append(PlatformSpecific(v), Common()...)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", v, got, want)
		}
	}
}

func TestSelectWindows(t *testing.T) {
	fs := Select(platform.WindowsLike, "")
	for _, f := range []string{"-DXP_WIN", "-DXP_WIN32", "-O3", "-Winline"} {
		if !fs.Contains(f) {
			t.Errorf("missing %s in %q", f, fs)
		}
	}
	if fs.Contains("-g") || fs.Contains("-DXP_UNIX") {
		t.Errorf("unix flags leaked into %q", fs)
	}
}

func TestSelectUnix(t *testing.T) {
	fs := Select(platform.UnixLike, "")
	if !fs.Contains("-g") || !fs.Contains("-DXP_UNIX") {
		t.Errorf("missing unix flags in %q", fs)
	}
	if fs.Contains("-DXP_WIN") || fs.Contains("-DXP_WIN32") {
		t.Errorf("windows defines leaked into %q", fs)
	}
}

func TestSelectUnknownVariant(t *testing.T) {
	got := Select(platform.Variant("beos-like"), "").CFlags()
	want := Select(platform.UnixLike, "").CFlags()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFreeze(t *testing.T) {
	fs := Select(platform.UnixLike, "")
	frozen := fs.Freeze()
	if !frozen.Frozen() {
		t.Fatal("expected frozen")
	}

	// Mutating the copy returned by CFlags must not leak back.
	flags := frozen.CFlags()
	flags[0] = "-O0"
	if frozen.CFlags()[0] == "-O0" {
		t.Error("CFlags exposed internal slice")
	}

	defer func() {
		if recover() == nil {
			t.Error("Append on frozen set should panic")
		}
	}()
	frozen.Append("-fPIC")
}
