// services/tts/tts.go
//
// Speech synthesis through Piper. A Voice is a validated handle on a .onnx
// model and its config JSON; synthesis shells out to the piper binary and
// returns raw 16-bit mono PCM.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
)

// DefaultSampleRate matches the low-quality Piper voices shipped on the Pi.
const DefaultSampleRate = 22050

// Voice is a loaded Piper voice handle.
type Voice struct {
	ModelPath  string
	ConfigPath string
	SampleRate int
}

type voiceConfig struct {
	Audio struct {
		SampleRate int `json:"sample_rate"`
	} `json:"audio"`
}

// LoadVoice validates the model and config paths and reads the sample rate
// from the config. An empty configPath defaults to the JSON next to the model.
func LoadVoice(modelPath, configPath string) (*Voice, error) {
	const op = "tts.load_voice"

	if modelPath == "" {
		return nil, errcode.Newf(errcode.TTSVoice, op, "empty model path")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errcode.New(errcode.TTSVoice, op, err)
	}
	if configPath == "" {
		configPath = modelPath + ".json"
	}
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errcode.New(errcode.TTSVoice, op, err)
	}

	var cfg voiceConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errcode.New(errcode.TTSVoice, op, err)
	}
	rate := cfg.Audio.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Voice{ModelPath: modelPath, ConfigPath: configPath, SampleRate: rate}, nil
}

// DefaultPiperCommand is the piper binary on PATH.
const DefaultPiperCommand = "piper"

// Synthesiser runs Piper as a subprocess.
type Synthesiser struct {
	argv []string
	run  func(ctx context.Context, name string, args []string, stdin string) ([]byte, error)
}

// NewSynthesiser resolves the piper binary up front.
func NewSynthesiser(command string) (*Synthesiser, error) {
	const op = "tts.piper"

	if command == "" {
		command = DefaultPiperCommand
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, errcode.New(errcode.TTSVoice, op, err)
	}
	if len(argv) == 0 {
		return nil, errcode.Newf(errcode.TTSVoice, op, "empty piper command")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, errcode.New(errcode.TTSVoice, op, err)
	}
	return &Synthesiser{argv: argv, run: runPiper}, nil
}

// SynthesiseToMemory renders text with the given voice and returns the raw
// PCM bytes. Fails with tts_voice when the handle is invalid.
func (s *Synthesiser) SynthesiseToMemory(ctx context.Context, v *Voice, text string) ([]byte, error) {
	const op = "tts.synthesise"

	if v == nil || v.ModelPath == "" {
		return nil, errcode.Newf(errcode.TTSVoice, op, "invalid voice handle")
	}
	if _, err := os.Stat(v.ModelPath); err != nil {
		return nil, errcode.New(errcode.TTSVoice, op, err)
	}

	args := append(append([]string(nil), s.argv[1:]...),
		"--model", v.ModelPath,
		"--config", v.ConfigPath,
		"--output_raw",
	)
	audio, err := s.run(ctx, s.argv[0], args, text)
	if err != nil {
		return nil, errcode.New(errcode.TTSVoice, op, err)
	}
	return audio, nil
}

func runPiper(ctx context.Context, name string, args []string, stdin string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
