package feed

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/qr-race/internal/cards"
)

// Script is a recorded or hand-written detection feed.
type Script struct {
	FPS    int           `yaml:"fps"`
	Frames []ScriptFrame `yaml:"frames"`
}

// ScriptFrame is one frame's detections, held for Repeat consecutive frames.
type ScriptFrame struct {
	Repeat int               `yaml:"repeat"`
	Cards  []cards.Detection `yaml:"cards"`
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to read %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("feed: %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes a script. A missing repeat means one frame.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.FPS < 0 {
		return nil, fmt.Errorf("fps %d must not be negative", s.FPS)
	}
	for i := range s.Frames {
		switch {
		case s.Frames[i].Repeat < 0:
			return nil, fmt.Errorf("frame %d: repeat %d must not be negative", i, s.Frames[i].Repeat)
		case s.Frames[i].Repeat == 0:
			s.Frames[i].Repeat = 1
		}
	}
	return &s, nil
}

// Len returns the number of frames the script expands to.
func (s *Script) Len() int {
	n := 0
	for _, f := range s.Frames {
		n += f.Repeat
	}
	return n
}

// ScriptSource plays a Script frame by frame. Once the script runs out it
// keeps yielding empty frames, as a camera looking at an empty table would.
type ScriptSource struct {
	mu     sync.Mutex
	script *Script
	entry  int // index into script.Frames
	served int // frames served from the current entry
	closed bool
}

// NewScriptSource creates a source positioned at the first frame.
func NewScriptSource(s *Script) *ScriptSource {
	return &ScriptSource{script: s}
}

// Next returns the next frame of the script.
func (s *ScriptSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Frame{}, ErrClosed
	}
	if s.entry >= len(s.script.Frames) {
		return Frame{}, nil
	}

	f := s.script.Frames[s.entry]
	s.served++
	if s.served >= f.Repeat {
		s.entry++
		s.served = 0
	}
	return Frame{Detections: append([]cards.Detection(nil), f.Cards...)}, nil
}

// Exhausted reports whether every scripted frame has been served.
func (s *ScriptSource) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry >= len(s.script.Frames)
}

// Close stops the source.
func (s *ScriptSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
