// pkg/env/symbols.go
package env

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arc-language/extconf/pkg/core"
)

// SymbolChecker decides whether a library file exports a symbol
type SymbolChecker interface {
	HasSymbol(path, symbol string) (bool, error)
}

// NewSymbolChecker returns the checker for a configured strategy
func NewSymbolChecker(strategy string) (SymbolChecker, error) {
	switch strategy {
	case core.SymbolProbeObject, "":
		return ObjectSymbols{}, nil
	case core.SymbolProbeDlopen:
		return DlopenSymbols{}, nil
	case core.SymbolProbeNone:
		return AnySymbol{}, nil
	default:
		return nil, fmt.Errorf("unknown symbol probe %q", strategy)
	}
}

// AnySymbol accepts every existing library file
type AnySymbol struct{}

func (AnySymbol) HasSymbol(path, symbol string) (bool, error) {
	return fileExists(path), nil
}

// ObjectSymbols reads the symbol or export table of the file without
// loading it, so libraries built for another target can be checked
type ObjectSymbols struct{}

var errUnknownFormat = errors.New("unrecognized object format")

var (
	magicELF     = []byte("\x7fELF")
	magicArchive = []byte("!<arch>\n")
	magicPE      = []byte("MZ")
)

func (ObjectSymbols) HasSymbol(path, symbol string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 8)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	head = head[:n]

	var names []string
	switch {
	case bytes.HasPrefix(head, magicELF):
		names, err = elfSymbols(f)
	case bytes.HasPrefix(head, magicArchive):
		names, err = archiveSymbols(f)
	case bytes.HasPrefix(head, magicPE):
		names, err = peSymbols(f)
	case isMachO(head):
		names, err = machoSymbols(f)
	default:
		return false, errUnknownFormat
	}
	if err != nil {
		return false, err
	}

	for _, name := range names {
		if symbolMatches(name, symbol) {
			return true, nil
		}
	}
	return false, nil
}

// symbolMatches accepts the C-level name and the underscore-prefixed form
// used by Mach-O and 32-bit Windows
func symbolMatches(name, symbol string) bool {
	return name == symbol || name == "_"+symbol
}

// elfSymbols returns defined global symbols from the dynamic and static tables
func elfSymbols(r io.ReaderAt) ([]string, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	collect := func(syms []elf.Symbol, err error) error {
		if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
			return err
		}
		for _, s := range syms {
			if s.Section == elf.SHN_UNDEF {
				continue
			}
			bind := elf.ST_BIND(s.Info)
			if bind != elf.STB_GLOBAL && bind != elf.STB_WEAK {
				continue
			}
			names = append(names, s.Name)
		}
		return nil
	}

	if err := collect(f.DynamicSymbols()); err != nil {
		return nil, err
	}
	if err := collect(f.Symbols()); err != nil {
		return nil, err
	}
	return names, nil
}

func isMachO(head []byte) bool {
	if len(head) < 4 {
		return false
	}
	be := uint32(head[0])<<24 | uint32(head[1])<<16 | uint32(head[2])<<8 | uint32(head[3])
	switch be {
	case macho.Magic32, macho.Magic64, macho.MagicFat,
		0xcefaedfe, 0xcffaedfe: // little-endian thin images
		return true
	}
	return false
}

func machoSymbols(r io.ReaderAt) ([]string, error) {
	if fat, err := macho.NewFatFile(r); err == nil {
		defer fat.Close()
		var names []string
		for _, arch := range fat.Arches {
			names = append(names, machoTable(arch.File)...)
		}
		return names, nil
	}

	f, err := macho.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return machoTable(f), nil
}

func machoTable(f *macho.File) []string {
	if f.Symtab == nil {
		return nil
	}
	names := make([]string, 0, len(f.Symtab.Syms))
	for _, s := range f.Symtab.Syms {
		// N_EXT set and not undefined
		if s.Type&0x01 == 0 || s.Type&0x0e == 0 {
			continue
		}
		names = append(names, s.Name)
	}
	return names
}

func peSymbols(r io.ReaderAt) ([]string, error) {
	f, err := pe.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := peExports(f)
	if err != nil {
		return nil, err
	}
	for _, s := range f.Symbols {
		if s.SectionNumber > 0 && s.StorageClass == 2 { // IMAGE_SYM_CLASS_EXTERNAL
			names = append(names, s.Name)
		}
	}
	return names, nil
}
