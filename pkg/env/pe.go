// pkg/env/pe.go
package env

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"
)

// peExports returns the names in a PE image's export directory. Object
// files and images without exports return no names.
func peExports(f *pe.File) ([]string, error) {
	var dd pe.DataDirectory
	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if oh.NumberOfRvaAndSizes <= pe.IMAGE_DIRECTORY_ENTRY_EXPORT {
			return nil, nil
		}
		dd = oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_EXPORT]
	case *pe.OptionalHeader64:
		if oh.NumberOfRvaAndSizes <= pe.IMAGE_DIRECTORY_ENTRY_EXPORT {
			return nil, nil
		}
		dd = oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_EXPORT]
	default:
		return nil, nil
	}
	if dd.VirtualAddress == 0 || dd.Size == 0 {
		return nil, nil
	}

	img := peImage{f: f, data: make(map[*pe.Section][]byte)}

	dir, err := img.at(dd.VirtualAddress, 40)
	if err != nil {
		return nil, fmt.Errorf("export directory: %w", err)
	}
	count := binary.LittleEndian.Uint32(dir[24:28])
	namesRVA := binary.LittleEndian.Uint32(dir[32:36])

	table, err := img.at(namesRVA, uint64(count)*4)
	if err != nil {
		return nil, fmt.Errorf("export name table: %w", err)
	}

	names := make([]string, 0, len(table)/4)
	for i := 0; i+4 <= len(table); i += 4 {
		rva := binary.LittleEndian.Uint32(table[i:])
		name, err := img.cstring(rva)
		if err != nil {
			return nil, fmt.Errorf("export name %d: %w", i/4, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// peImage resolves relative virtual addresses to section contents
type peImage struct {
	f    *pe.File
	data map[*pe.Section][]byte
}

func (p peImage) section(rva uint32) (*pe.Section, []byte, error) {
	for _, s := range p.f.Sections {
		size := s.VirtualSize
		if size == 0 {
			size = s.Size
		}
		if rva < s.VirtualAddress || uint64(rva) >= uint64(s.VirtualAddress)+uint64(size) {
			continue
		}
		data, ok := p.data[s]
		if !ok {
			var err error
			if data, err = s.Data(); err != nil {
				return nil, nil, err
			}
			p.data[s] = data
		}
		return s, data, nil
	}
	return nil, nil, fmt.Errorf("rva %#x outside all sections", rva)
}

// at returns n bytes starting at rva
func (p peImage) at(rva uint32, n uint64) ([]byte, error) {
	s, data, err := p.section(rva)
	if err != nil {
		return nil, err
	}
	off := uint64(rva - s.VirtualAddress)
	if off+n > uint64(len(data)) {
		return nil, fmt.Errorf("rva %#x+%d past end of section %s", rva, n, s.Name)
	}
	return data[off : off+n], nil
}

// cstring returns the NUL-terminated string at rva
func (p peImage) cstring(rva uint32) (string, error) {
	s, data, err := p.section(rva)
	if err != nil {
		return "", err
	}
	off := uint64(rva - s.VirtualAddress)
	if off >= uint64(len(data)) {
		return "", fmt.Errorf("rva %#x past end of section %s", rva, s.Name)
	}
	rest := data[off:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", fmt.Errorf("unterminated string at rva %#x", rva)
	}
	return string(rest[:end]), nil
}
