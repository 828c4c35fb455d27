// pkg/env/archive.go
package env

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"

	"github.com/blakesmith/ar"
)

// archiveSymbols lists the symbols of a static or import library. The GNU
// archive index ("/" member) is used when present; otherwise each ELF
// member's table is read.
func archiveSymbols(r io.ReadSeeker) ([]string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	reader := ar.NewReader(r)
	var names []string
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		member, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(header.Name)
		switch name {
		case "/", "/SYM64/":
			// The index covers every member; no need to parse them.
			return gnuIndexSymbols(member, name == "/SYM64/")
		case "//":
			continue
		}

		if bytes.HasPrefix(member, magicELF) {
			syms, err := elfSymbols(bytes.NewReader(member))
			if err != nil {
				continue
			}
			names = append(names, syms...)
		}
	}
	return names, nil
}

// gnuIndexSymbols decodes the archive symbol index: a big-endian count,
// that many member offsets, then NUL-terminated names
func gnuIndexSymbols(data []byte, wide bool) ([]string, error) {
	width := 4
	if wide {
		width = 8
	}
	if len(data) < width {
		return nil, errors.New("truncated archive index")
	}

	var count uint64
	if wide {
		count = binary.BigEndian.Uint64(data)
	} else {
		count = uint64(binary.BigEndian.Uint32(data))
	}

	// count offsets follow the count itself
	if count > uint64(len(data)/width)-1 {
		return nil, errors.New("truncated archive index")
	}
	start := uint64(width) * (count + 1)

	strtab := data[start:]
	names := make([]string, 0, count)
	for len(strtab) > 0 && uint64(len(names)) < count {
		end := bytes.IndexByte(strtab, 0)
		if end < 0 {
			end = len(strtab)
		}
		names = append(names, string(strtab[:end]))
		if end == len(strtab) {
			break
		}
		strtab = strtab[end+1:]
	}
	return names, nil
}
