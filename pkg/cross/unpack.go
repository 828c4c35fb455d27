// pkg/cross/unpack.go
package cross

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// DirName is the directory under the project root that holds vendored
// cross-compilation bundles
const DirName = "cross"

// ErrUnsafePath indicates an archive entry that would land outside the
// destination directory
var ErrUnsafePath = errors.New("entry escapes destination")

// Stats counts what an unpack produced
type Stats struct {
	Files    int
	Dirs     int
	Symlinks int
}

// Unpacker extracts vendored bundles (e.g. libxml2-2.7.1.win32) into a
// project's cross directory
type Unpacker struct {
	Root   string // Project root; bundles land in Root/cross
	logger *log.Logger
}

// NewUnpacker creates an unpacker for root. A nil logger discards output.
func NewUnpacker(root string, logger *log.Logger) *Unpacker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Unpacker{Root: root, logger: logger}
}

// Dir returns the destination directory
func (u *Unpacker) Dir() string {
	return filepath.Join(u.Root, DirName)
}

// UnpackFile extracts the bundle at path. .tar.xz and .txz are decompressed;
// anything else is read as a plain tar.
func (u *Unpacker) UnpackFile(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("opening bundle: %w", err)
	}
	defer f.Close()

	u.logger.Printf("Unpacking %s into %s", filepath.Base(path), u.Dir())

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") || strings.HasSuffix(path, ".txz") {
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return Stats{}, fmt.Errorf("creating xz reader: %w", err)
		}
		r = xzReader
	}
	return u.Unpack(r)
}

// Unpack extracts a tar stream into the cross directory
func (u *Unpacker) Unpack(r io.Reader) (Stats, error) {
	var stats Stats
	dest := u.Dir()
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return stats, fmt.Errorf("creating %s: %w", dest, err)
	}

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading tar entry: %w", err)
		}

		cleanPath := strings.TrimPrefix(header.Name, "./")
		if cleanPath == "" || cleanPath == "." {
			continue
		}
		target, err := within(dest, cleanPath)
		if err != nil {
			return stats, err
		}
		if err := realParents(dest, cleanPath); err != nil {
			return stats, err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return stats, fmt.Errorf("creating directory %s: %w", target, err)
			}
			stats.Dirs++

		case tar.TypeSymlink:
			if filepath.IsAbs(header.Linkname) {
				return stats, fmt.Errorf("%w: %s -> %s", ErrUnsafePath, cleanPath, header.Linkname)
			}
			// Cleaned links only climb before descending, so each ".."
			// crosses a real directory.
			link := filepath.Clean(filepath.FromSlash(header.Linkname))
			if _, err := within(dest, filepath.Join(filepath.Dir(cleanPath), link)); err != nil {
				return stats, err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return stats, fmt.Errorf("creating parent directory for symlink: %w", err)
			}
			os.Remove(target)
			if err := os.Symlink(link, target); err != nil {
				return stats, fmt.Errorf("creating symlink %s -> %s: %w", target, link, err)
			}
			stats.Symlinks++

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return stats, fmt.Errorf("creating parent directory: %w", err)
			}
			os.Remove(target)
			if err := writeFile(target, tr, header); err != nil {
				return stats, err
			}
			stats.Files++

		default:
			u.logger.Printf("  skipping unsupported entry type %v for %s", header.Typeflag, cleanPath)
		}
	}

	u.logger.Printf("  %d files, %d directories, %d symlinks", stats.Files, stats.Dirs, stats.Symlinks)
	return stats, nil
}

// realParents rejects name when a directory above it inside dest is a
// symlink, so later entries cannot be routed through an earlier link
func realParents(dest, name string) error {
	dir := dest
	parts := strings.Split(filepath.Dir(filepath.Clean(filepath.FromSlash(name))), string(filepath.Separator))
	for _, part := range parts {
		if part == "." || part == "" {
			continue
		}
		dir = filepath.Join(dir, part)
		fi, err := os.Lstat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("checking %s: %w", dir, err)
		}
		if fi.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s passes through symlink %s", ErrUnsafePath, name, dir)
		}
	}
	return nil
}

func writeFile(target string, r io.Reader, header *tar.Header) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode).Perm())
	if err != nil {
		return fmt.Errorf("creating file %s: %w", target, err)
	}
	written, err := io.Copy(out, r)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing file %s: %w", target, err)
	}
	if written != header.Size {
		return fmt.Errorf("file size mismatch for %s: expected %d, got %d", target, header.Size, written)
	}
	return nil
}

// within joins name onto dest and rejects results outside dest
func within(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}
