package soundtrack

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/constellation/internal/config"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Patterns lists the file patterns Decode understands.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Decode opens an audio file by extension. The returned streamer owns f.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open soundtrack: %w", err)
	}
	s, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return s, format, nil
}

// Player loops one ambient track on the speaker.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *tap
	level    float64
	path     string
	initDone bool
}

var initSpeaker = speaker.Init

func NewPlayer() *Player {
	return &Player{}
}

// Load replaces the current track and starts playing it in a loop.
func (p *Player) Load(path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	t := newTap(beep.Loop(-1, streamer), config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = p.closeStreamer()
			p.path = ""
			p.level = 0
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.closeStreamer()

	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.path = path
	p.level = 0
	speaker.Play(ctrl)

	slog.Info("Soundtrack loaded", "path", path, "sample_rate", int(format.SampleRate))
	return nil
}

// TogglePause pauses or resumes playback and returns the paused state.
func (p *Player) TogglePause() bool {
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	paused := p.ctrl.Paused
	speaker.Unlock()
	return paused
}

func (p *Player) Playing() bool {
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.ctrl.Paused
}

func (p *Player) Track() string {
	if p.path == "" {
		return ""
	}
	return filepath.Base(p.path)
}

// Level samples the tap and returns the smoothed loudness. Call once per
// frame.
func (p *Player) Level() float64 {
	if p.tap == nil {
		return 0
	}
	p.level = smooth(p.level, rms(p.tap.snapshot(2048)))
	return p.level
}

func smooth(prev, next float64) float64 {
	return config.SmoothingFactor*prev + (1-config.SmoothingFactor)*next
}

func (p *Player) Close() error {
	if p.initDone {
		speaker.Clear()
	}
	return p.closeStreamer()
}

func (p *Player) closeStreamer() error {
	if p.streamer == nil {
		return nil
	}
	err := p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.tap = nil
	return err
}
