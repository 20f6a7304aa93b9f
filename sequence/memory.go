package sequence

import "github.com/lixenwraith/irbview/intensity"

// Memory serves frames held in memory
type Memory struct {
	frames []*intensity.Frame
}

// NewMemory wraps frames; the slice is not copied
func NewMemory(frames ...*intensity.Frame) *Memory {
	return &Memory{frames: frames}
}

// FrameCount implements Sequence
func (m *Memory) FrameCount() int {
	return len(m.frames)
}

// ReadFrame implements Sequence
func (m *Memory) ReadFrame(index int) (*intensity.Frame, error) {
	if err := checkIndex(index, len(m.frames)); err != nil {
		return nil, err
	}
	return m.frames[index], nil
}

// Close implements Sequence
func (m *Memory) Close() error {
	return nil
}
