// cli/wire.go
package cli

import (
	"github.com/Prathmesh-K/SmartGlassesPi/config"
	"github.com/Prathmesh-K/SmartGlassesPi/services/camera"
	"github.com/Prathmesh-K/SmartGlassesPi/services/ocr"
	"github.com/Prathmesh-K/SmartGlassesPi/services/pipeline"
	"github.com/Prathmesh-K/SmartGlassesPi/services/store"
	"github.com/Prathmesh-K/SmartGlassesPi/services/tts"
	"github.com/Prathmesh-K/SmartGlassesPi/services/uplink"
)

// buildSpeech loads the voice and synthesiser from config.
func buildSpeech(cfg config.Config) (*tts.Voice, *tts.Synthesiser, error) {
	voice, err := tts.LoadVoice(cfg.TTS.ModelPath, cfg.TTS.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	synth, err := tts.NewSynthesiser(cfg.TTS.PiperCommand)
	if err != nil {
		return nil, nil, err
	}
	return voice, synth, nil
}

// buildPipeline assembles the full capture chain. The returned cleanup closes
// the journal when one is configured.
func buildPipeline(cfg config.Config) (*pipeline.Pipeline, func(), error) {
	cam, err := camera.NewRpicamStill(cfg.Camera.Command)
	if err != nil {
		return nil, nil, err
	}
	voice, synth, err := buildSpeech(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []pipeline.Option{pipeline.WithFallbackText(cfg.Pipeline.FallbackText)}
	cleanup := func() {}
	if cfg.Journal.Path != "" {
		st, err := store.Open(cfg.Journal.Path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, pipeline.WithJournal(st))
		cleanup = func() { st.Close() }
	}
	if cfg.Uplink.Endpoint != "" {
		opts = append(opts, pipeline.WithUploader(uplink.NewUploader(cfg.Uplink.Endpoint)))
	}

	p := pipeline.New(
		camera.NewService(cam, cfg.Camera.CapturesDir),
		ocr.NewTesseractEngine(cfg.OCR.Languages...),
		synth,
		voice,
		opts...,
	)
	return p, cleanup, nil
}
