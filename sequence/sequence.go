// Package sequence defines the frame-source contract consumed by the viewer
// and a few Go-native frame sources.
//
// Proprietary containers (Infratec .irb and similar) are decoded elsewhere and
// plug in through Register. The built-in sources read plain frame files: CSV
// matrices and 16-bit grayscale PNGs, alone or as a directory of frames.
package sequence

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lixenwraith/irbview/intensity"
)

// Collaborator errors, returned unchanged to callers
var (
	ErrNotFound          = errors.New("sequence: not found")
	ErrUnsupportedFormat = errors.New("sequence: unsupported format")
	ErrCorrupt           = errors.New("sequence: corrupt data")

	// ErrEndOfSequence reports an out-of-range frame index; not fatal
	ErrEndOfSequence = errors.New("sequence: end of sequence")
)

// Sequence is an ordered, random-access set of frames
// ReadFrame must be safe for concurrent use when FrameCount > 1
type Sequence interface {
	FrameCount() int
	ReadFrame(index int) (*intensity.Frame, error)
	Close() error
}

// Opener opens a multi-frame container file
type Opener func(path string) (Sequence, error)

// Decoder decodes a single-frame file
type Decoder func(r io.Reader) (*intensity.Frame, error)

var (
	registryMu sync.RWMutex
	openers    = map[string]Opener{}
	decoders   = map[string]Decoder{}
)

func init() {
	RegisterDecoder(".csv", decodeCSV)
	RegisterDecoder(".png", decodePNG)
}

// Register installs a container opener for a file extension such as ".irb"
func Register(ext string, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	openers[normalizeExt(ext)] = open
}

// RegisterDecoder installs a single-frame decoder for a file extension
func RegisterDecoder(ext string, dec Decoder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	decoders[normalizeExt(ext)] = dec
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func lookup(path string) (Opener, Decoder) {
	ext := normalizeExt(filepath.Ext(path))
	registryMu.RLock()
	defer registryMu.RUnlock()
	return openers[ext], decoders[ext]
}

// Open opens a container file, a single frame file or a directory of frame files
func Open(path string) (Sequence, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if info.IsDir() {
		return openDir(path)
	}

	open, dec := lookup(path)
	switch {
	case open != nil:
		return open(path)
	case dec != nil:
		return openFrameFile(path, dec)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// checkIndex reports ErrEndOfSequence for indices outside [0, count)
func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: frame %d of %d", ErrEndOfSequence, index, count)
	}
	return nil
}
