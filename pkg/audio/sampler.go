package audio

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/orcagrid/orca-go/pkg/grid"
)

// DefaultSampleDir is where SamplerSink looks for .wav files, following the
// original engine's "orca/samples" convention.
const DefaultSampleDir = "orca/samples"

// SamplerSink implements engine.Sink for NoteSample notes: it decodes every
// .wav file under a sample directory once at construction, then plays a
// speed-resampled, velocity-scaled copy per note.
type SamplerSink struct {
	ctx   *audio.Context
	log   *slog.Logger
	mu    sync.Mutex
	waves [][]byte // raw 16-bit stereo PCM, one per loaded file
}

// NewSamplerSink scans dir for .wav files (in filename order, matching the
// original's directory-read-then-filter scan) and decodes each against
// ctx's sample rate. A missing or empty directory yields a sink with no
// samples loaded; every note then falls back to silence rather than erroring.
func NewSamplerSink(ctx *audio.Context, dir string, log *slog.Logger) *SamplerSink {
	s := &SamplerSink{ctx: ctx, log: log}
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Info("sampler: no sample directory, running silent", "dir", dir)
		return s
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		pcm, err := s.decode(filepath.Join(dir, name))
		if err != nil {
			log.Warn("sampler: failed to decode wav", "file", name, "err", err)
			continue
		}
		s.waves = append(s.waves, pcm)
	}
	return s
}

func (s *SamplerSink) decode(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, err := wav.DecodeWithSampleRate(sampleRate, f)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

func (s *SamplerSink) Start(n grid.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.waves) == 0 {
		return
	}

	pcm := s.waves[n.Sample%len(s.waves)]
	speed := speedRatio(n.Speed)
	velocity := float64(n.Velocity) / 127

	player, err := s.ctx.NewPlayer(newResampleReader(pcm, speed, velocity))
	if err != nil {
		s.log.Warn("sampler: failed to build player", "err", err)
		return
	}
	player.Play()
}

func (s *SamplerSink) Stop(grid.Note) {}

// speedRatio follows the original's play_wave speed handling: values at or
// above 9 are treated as a fine-grained percentage (divided by 100), values
// below 9 as a direct multiplier, with 0 left as silence-free unity speed.
func speedRatio(raw int) float64 {
	if raw <= 0 {
		return 1
	}
	if raw >= 9 {
		return float64(raw) / 100
	}
	return float64(raw)
}

// resampleReader reads pcm (16-bit LE stereo) at a fractional step derived
// from a playback speed ratio, and scales every sample by velocity.
type resampleReader struct {
	pcm      []byte
	pos      float64
	step     float64
	velocity float64
}

func newResampleReader(pcm []byte, speed, velocity float64) *resampleReader {
	if speed <= 0 {
		speed = 1
	}
	return &resampleReader{pcm: pcm, step: speed, velocity: velocity}
}

func (r *resampleReader) Read(buf []byte) (int, error) {
	frames := len(r.pcm) / 4
	if frames == 0 {
		return 0, io.EOF
	}

	n := 0
	for n+4 <= len(buf) {
		idx := int(r.pos)
		if idx >= frames {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		off := idx * 4
		for i := 0; i < 4; i++ {
			buf[n+i] = r.pcm[off+i]
		}
		if r.velocity != 1 {
			scaleFrame(buf[n:n+4], r.velocity)
		}
		n += 4
		r.pos += r.step
	}
	return n, nil
}

func scaleFrame(frame []byte, velocity float64) {
	for ch := 0; ch < 2; ch++ {
		lo, hi := frame[ch*2], frame[ch*2+1]
		v := int16(uint16(lo) | uint16(hi)<<8)
		scaled := clampSample(float64(v)/32768*velocity) * 32767
		out := int16(scaled)
		frame[ch*2] = byte(out)
		frame[ch*2+1] = byte(out >> 8)
	}
}
