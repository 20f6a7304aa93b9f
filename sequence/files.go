package sequence

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lixenwraith/irbview/intensity"
)

// files is a sequence backed by one frame per file
// Frames are decoded on every read; nothing is cached
type files struct {
	paths    []string
	decoders []Decoder
}

func openFrameFile(path string, dec Decoder) (Sequence, error) {
	s := &files{paths: []string{path}, decoders: []Decoder{dec}}
	// Fail fast on a corrupt single frame
	if _, err := s.ReadFrame(0); err != nil {
		return nil, err
	}
	return s, nil
}

func openDir(dir string) (Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	s := &files{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		_, dec := lookup(path)
		if dec == nil {
			log.Printf("[sequence] skipping %s: no frame decoder", name)
			continue
		}
		s.paths = append(s.paths, path)
		s.decoders = append(s.decoders, dec)
	}

	if len(s.paths) == 0 {
		return nil, fmt.Errorf("%w: no frame files in %s", ErrUnsupportedFormat, dir)
	}
	log.Printf("[sequence] %s: %d frame file(s)", dir, len(s.paths))
	return s, nil
}

// FrameCount implements Sequence
func (s *files) FrameCount() int {
	return len(s.paths)
}

// ReadFrame implements Sequence
func (s *files) ReadFrame(index int) (*intensity.Frame, error) {
	if err := checkIndex(index, len(s.paths)); err != nil {
		return nil, err
	}

	path := s.paths[index]
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("frame %d: %w", index, err)
	}
	defer f.Close()

	frame, err := s.decoders[index](f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return frame, nil
}

// Close implements Sequence
func (s *files) Close() error {
	return nil
}
