// services/pipeline/pipeline.go
//
// The capture → OCR → speak chain. Pure sequential composition: any failure
// aborts and propagates, no retry, no partial-result caching, no timeout.
// On memory-constrained hardware the OCR step may be killed by the system;
// that is a known operational weakness, not a handled failure mode.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Prathmesh-K/SmartGlassesPi/services/ocr"
	"github.com/Prathmesh-K/SmartGlassesPi/services/store"
	"github.com/Prathmesh-K/SmartGlassesPi/services/tts"
	"github.com/Prathmesh-K/SmartGlassesPi/services/uplink"
)

// DefaultFallbackText is spoken when no text is found in the frame.
const DefaultFallbackText = "No text detected in image."

// Camera produces the photo artifact.
type Camera interface {
	CapturePhoto(ctx context.Context) (string, error)
}

// Synthesiser renders text to audio bytes.
type Synthesiser interface {
	SynthesiseToMemory(ctx context.Context, v *tts.Voice, text string) ([]byte, error)
}

// Pipeline wires the three collaborators plus the optional journal/uplink.
type Pipeline struct {
	cam    Camera
	engine ocr.Engine
	synth  Synthesiser
	voice  *tts.Voice

	journal  *store.Store     // nil disables journaling
	uploader *uplink.Uploader // nil or unconfigured disables upload

	fallbackText string
	preflight    func() // memory check hook; warning-only
}

type Option func(*Pipeline)

// WithJournal records each capture in the SQLite journal.
func WithJournal(st *store.Store) Option {
	return func(p *Pipeline) { p.journal = st }
}

// WithUploader pushes each photo to the remote blob endpoint.
func WithUploader(u *uplink.Uploader) Option {
	return func(p *Pipeline) { p.uploader = u }
}

// WithFallbackText overrides the sentence spoken when OCR finds nothing.
func WithFallbackText(text string) Option {
	return func(p *Pipeline) {
		if text != "" {
			p.fallbackText = text
		}
	}
}

func New(cam Camera, engine ocr.Engine, synth Synthesiser, voice *tts.Voice, opts ...Option) *Pipeline {
	p := &Pipeline{
		cam:          cam,
		engine:       engine,
		synth:        synth,
		voice:        voice,
		fallbackText: DefaultFallbackText,
		preflight:    WarnIfLowMemory,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is what one pass through the chain produced.
type Result struct {
	CaptureID string
	PhotoPath string
	Text      string
	Audio     []byte
	// SampleRate of Audio, taken from the voice handle.
	SampleRate int
}

// CaptureAndSpeak runs the full chain. A camera failure means OCR and TTS are
// never attempted; an OCR failure means TTS is never attempted.
func (p *Pipeline) CaptureAndSpeak(ctx context.Context) (Result, error) {
	p.preflight()

	photoPath, err := p.cam.CapturePhoto(ctx)
	if err != nil {
		return Result{}, err
	}

	stream, err := ocr.DetectText(ctx, p.engine, photoPath)
	if err != nil {
		return Result{}, err
	}
	text := strings.TrimSpace(strings.Join(stream.Collect(), " "))
	if text == "" {
		text = p.fallbackText
	}

	audio, err := p.synth.SynthesiseToMemory(ctx, p.voice, text)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		CaptureID:  uuid.NewString(),
		PhotoPath:  photoPath,
		Text:       text,
		Audio:      audio,
		SampleRate: tts.DefaultSampleRate,
	}
	if p.voice != nil && p.voice.SampleRate > 0 {
		res.SampleRate = p.voice.SampleRate
	}
	p.record(ctx, res)
	return res, nil
}

// record journals and uploads the artifact. Both are supplements to the core
// chain: failures are logged, never fatal to a synthesis that already worked.
func (p *Pipeline) record(ctx context.Context, res Result) {
	if p.journal != nil {
		err := p.journal.WriteCapture(ctx, store.Capture{
			ID:        res.CaptureID,
			PhotoPath: res.PhotoPath,
			Text:      res.Text,
			CreatedAt: time.Now(),
		})
		if err != nil {
			slog.Warn("journal write failed", "capture", res.CaptureID, "error", err)
		}
	}
	if p.uploader.Enabled() {
		url, err := p.uploader.UploadPhoto(ctx, res.PhotoPath)
		if err != nil {
			slog.Warn("photo upload failed", "capture", res.CaptureID, "error", err)
			return
		}
		if p.journal != nil {
			if err := p.journal.SetUploadURL(ctx, res.CaptureID, url); err != nil {
				slog.Warn("journal upload url failed", "capture", res.CaptureID, "error", err)
			}
		}
	}
}
