// Package romload reads ROM images from disk, either as plain files or as
// the first ROM entry of a zip, gzip, tar.gz, 7z or rar archive.
package romload

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexaflex/dnes/fault"
	"github.com/pkg/errors"
)

// MaxSize is the largest ROM image accepted.
const MaxSize = 8 << 20

// Extensions lists the file extensions recognized as ROM entries in archives.
var Extensions = []string{".nes"}

// Errors returned by Load, wrapped in fault.IO errors.
var (
	ErrEmpty     = errors.New("rom is empty")
	ErrNoROMFile = errors.New("no rom file found in archive")
	ErrTooLarge  = errors.Errorf("rom exceeds %d bytes", MaxSize)
)

var (
	magicZIP    = []byte{0x50, 0x4b, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4b, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}
	magicGzip   = []byte{0x1f, 0x8b}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21}
)

type format int

const (
	formatRaw format = iota
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// Load reads the ROM at path. It returns the image and the base name of
// the file or archive entry it came from.
//
// Every failure, including an empty image, is a fault.IO error.
func Load(path string) ([]byte, string, error) {
	data, name, err := load(path)
	if err != nil {
		return nil, "", fault.Wrap(fault.IO, err, "load %s", path)
	}

	if len(data) == 0 {
		return nil, "", fault.Wrap(fault.IO, ErrEmpty, "load %s", path)
	}

	return data, name, nil
}

func load(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", errors.Wrap(err, "read header")
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", errors.Wrap(err, "seek")
	}

	switch detect(header[:n], path) {
	case formatZIP:
		return fromZIP(path)
	case format7z:
		return from7z(path)
	case formatGzip:
		return fromGzip(path)
	case formatRAR:
		return fromRAR(path)
	}

	data, err := limitedRead(f)
	if err != nil {
		return nil, "", err
	}
	return data, filepath.Base(path), nil
}

// detect picks the container format from magic bytes, falling back to the
// file extension. Anything unrecognized is read as a plain image.
func detect(header []byte, path string) format {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEnd):
		return formatZIP
	case bytes.HasPrefix(header, magicRAR):
		return formatRAR
	case bytes.HasPrefix(header, magic7z):
		return format7z
	case bytes.HasPrefix(header, magicGzip):
		return formatGzip
	}

	// An empty or truncated archive still deserves an archive error.
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	return formatRaw
}

// isROM returns true if name has one of the ROM extensions.
func isROM(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// limitedRead reads r up to MaxSize bytes.
func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}

	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
