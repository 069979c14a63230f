package core

// RuntimeConfig contains configuration passed to the front end at startup.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
	FrameHz int // Camera frames processed per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FrameHz: 30,
	}
}

// FrameRate returns FrameHz, falling back to the default for non-positive values.
func (c RuntimeConfig) FrameRate() int {
	if c.FrameHz <= 0 {
		return DefaultConfig().FrameHz
	}
	return c.FrameHz
}
