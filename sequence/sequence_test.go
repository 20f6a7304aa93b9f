package sequence

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/irbview/intensity"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writePNG(t *testing.T, dir, name string, w, h int, level func(x, y int) uint16) string {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: level(x, y)})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Open(writeFile(t, dir, "clip.irb", "IRB\x00"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(writeFile(t, dir, "notes.txt", "hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(t.TempDir())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpenCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "frame.csv", "# thermal export\n20.5, 21.0, 22.25\n19,18,17\n")

	seq, err := Open(path)
	require.NoError(t, err)
	defer seq.Close()

	require.Equal(t, 1, seq.FrameCount())
	f, err := seq.ReadFrame(0)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Equal(t, []float32{20.5, 21, 22.25, 19, 18, 17}, f.Data)

	_, err = seq.ReadFrame(1)
	assert.ErrorIs(t, err, ErrEndOfSequence)
	_, err = seq.ReadFrame(-1)
	assert.ErrorIs(t, err, ErrEndOfSequence)
}

func TestDecodeCSVVariants(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []float32
		width   int
		wantErr error
	}{
		{"semicolon decimal comma", "1,5;2,5\n3;4\n", []float32{1.5, 2.5, 3, 4}, 2, nil},
		{"semicolon in comment", "# camera A; exported\n1,2\n3,4\n", []float32{1, 2, 3, 4}, 2, nil},
		{"semicolon after comma header comment", "# x,y\n1;2\n3;4\n", []float32{1, 2, 3, 4}, 2, nil},
		{"trailing separator", "1,2,\n3,4,\n", []float32{1, 2, 3, 4}, 2, nil},
		{"ragged", "1,2,3\n4,5\n", nil, 0, ErrCorrupt},
		{"not a number", "1,x\n", nil, 0, ErrCorrupt},
		{"empty", "", nil, 0, ErrCorrupt},
		{"comments only", "# nothing\n", nil, 0, ErrCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := decodeCSV(strings.NewReader(tt.in))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, f.Width)
			assert.Equal(t, tt.want, f.Data)
		})
	}
}

func TestOpenCorruptFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(writeFile(t, dir, "bad.csv", "1,2\n3\n"))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Open(writeFile(t, dir, "bad.png", "not a png"))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpenPNG(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "f.png", 4, 2, func(x, y int) uint16 { return uint16(1000*y + x) })

	seq, err := Open(path)
	require.NoError(t, err)
	f, err := seq.ReadFrame(0)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Equal(t, float32(1003), f.At(3, 1))
	assert.Equal(t, float32(0), f.At(0, 0))
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "frame_002.csv", "5,6\n7,8\n")
	writeFile(t, dir, "frame_001.csv", "1,2\n3,4\n")
	writePNG(t, dir, "frame_003.png", 2, 2, func(x, y int) uint16 { return 9 })
	writeFile(t, dir, "README.md", "ignored")
	writeFile(t, dir, ".hidden.csv", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	seq, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, 3, seq.FrameCount())

	first, err := seq.ReadFrame(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, first.Data)

	last, err := seq.ReadFrame(2)
	require.NoError(t, err)
	assert.Equal(t, []float32{9, 9, 9, 9}, last.Data)

	_, err = seq.ReadFrame(3)
	assert.ErrorIs(t, err, ErrEndOfSequence)
}

func TestDirectoryFrameRemoved(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "1\n")
	p := writeFile(t, dir, "b.csv", "2\n")

	seq, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(p))

	_, err = seq.ReadFrame(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

type fakeContainer struct{ *Memory }

func TestRegisterContainer(t *testing.T) {
	var opened atomic.Bool
	Register("fake", func(path string) (Sequence, error) {
		opened.Store(true)
		return fakeContainer{NewMemory(intensity.NewFrame(1, 1))}, nil
	})

	path := writeFile(t, t.TempDir(), "clip.FAKE", "x")
	seq, err := Open(path)
	require.NoError(t, err)
	assert.True(t, opened.Load())
	assert.Equal(t, 1, seq.FrameCount())
}

func TestMemory(t *testing.T) {
	a, b := intensity.NewFrame(1, 1), intensity.NewFrame(2, 2)
	m := NewMemory(a, b)

	assert.Equal(t, 2, m.FrameCount())
	got, err := m.ReadFrame(1)
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = m.ReadFrame(2)
	assert.True(t, errors.Is(err, ErrEndOfSequence))
	assert.NoError(t, m.Close())
}

func TestCursor(t *testing.T) {
	c := NewCursor(3)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Prev())
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.True(t, c.AtEnd())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 0, c.First())
	assert.Equal(t, 2, c.Last())
	assert.Equal(t, 1, c.Seek(1))
	assert.Equal(t, 0, c.Seek(-10))
	assert.Equal(t, 2, c.Seek(99))

	empty := NewCursor(0)
	assert.Equal(t, 0, empty.Last())
	assert.Equal(t, 0, empty.Next())
	assert.True(t, empty.AtEnd())
}

func TestScanRange(t *testing.T) {
	frames := make([]*intensity.Frame, 10)
	for i := range frames {
		f := intensity.NewFrame(2, 1)
		f.Data[0] = float32(i)
		f.Data[1] = float32(i * 3)
		frames[i] = f
	}

	ext, err := ScanRange(context.Background(), NewMemory(frames...), 4)
	require.NoError(t, err)
	assert.Equal(t, Extent{Min: 0, Max: 27, Frames: 10}, ext)

	ext, err = ScanRange(context.Background(), NewMemory(), 0)
	require.NoError(t, err)
	assert.Equal(t, Extent{}, ext)
}

type failing struct {
	*Memory
	at int
}

var errBroken = errors.New("broken")

func (f failing) ReadFrame(i int) (*intensity.Frame, error) {
	if i == f.at {
		return nil, errBroken
	}
	return f.Memory.ReadFrame(i)
}

func TestScanRangeErrors(t *testing.T) {
	frames := []*intensity.Frame{intensity.NewFrame(1, 1), intensity.NewFrame(1, 1), intensity.NewFrame(1, 1)}

	_, err := ScanRange(context.Background(), failing{NewMemory(frames...), 1}, 2)
	assert.ErrorIs(t, err, errBroken)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ScanRange(ctx, NewMemory(frames...), 2)
	assert.ErrorIs(t, err, context.Canceled)
}
