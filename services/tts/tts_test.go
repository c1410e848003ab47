package tts

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
)

func writeVoiceFiles(t *testing.T, sampleRate int) (model, config string) {
	t.Helper()
	dir := t.TempDir()
	model = filepath.Join(dir, "en_US-amy-low.onnx")
	config = model + ".json"
	if err := os.WriteFile(model, []byte("onnx"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	cfg := `{"audio":{"sample_rate":` + itoa(sampleRate) + `}}`
	if sampleRate <= 0 {
		cfg = `{}`
	}
	if err := os.WriteFile(config, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return model, config
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func TestLoadVoice(t *testing.T) {
	model, config := writeVoiceFiles(t, 16000)
	v, err := LoadVoice(model, config)
	if err != nil {
		t.Fatalf("LoadVoice: %v", err)
	}
	if v.SampleRate != 16000 {
		t.Fatalf("sample rate %d, want 16000", v.SampleRate)
	}
}

func TestLoadVoice_DefaultConfigPathAndRate(t *testing.T) {
	model, config := writeVoiceFiles(t, 0)
	v, err := LoadVoice(model, "")
	if err != nil {
		t.Fatalf("LoadVoice: %v", err)
	}
	if v.ConfigPath != config {
		t.Fatalf("config path %q, want %q", v.ConfigPath, config)
	}
	if v.SampleRate != DefaultSampleRate {
		t.Fatalf("sample rate %d, want default %d", v.SampleRate, DefaultSampleRate)
	}
}

func TestLoadVoice_MissingModel(t *testing.T) {
	_, err := LoadVoice(filepath.Join(t.TempDir(), "missing.onnx"), "")
	if errcode.Of(err) != errcode.TTSVoice {
		t.Fatalf("want tts_voice, got %v", err)
	}
}

func TestSynthesiseToMemory(t *testing.T) {
	model, config := writeVoiceFiles(t, 22050)
	v := &Voice{ModelPath: model, ConfigPath: config, SampleRate: 22050}

	var gotArgs []string
	var gotStdin string
	s := &Synthesiser{
		argv: []string{"piper"},
		run: func(_ context.Context, _ string, args []string, stdin string) ([]byte, error) {
			gotArgs, gotStdin = args, stdin
			return []byte{1, 2, 3, 4}, nil
		},
	}

	audio, err := s.SynthesiseToMemory(context.Background(), v, "EXIT")
	if err != nil {
		t.Fatalf("SynthesiseToMemory: %v", err)
	}
	if len(audio) != 4 {
		t.Fatalf("audio length %d", len(audio))
	}
	if gotStdin != "EXIT" {
		t.Fatalf("text must go to stdin; got %q", gotStdin)
	}
	want := []string{"--model", model, "--config", config, "--output_raw"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Fatalf("args %v, want %v", gotArgs, want)
		}
	}
}

func TestSynthesiseToMemory_InvalidVoice(t *testing.T) {
	s := &Synthesiser{argv: []string{"piper"}}

	if _, err := s.SynthesiseToMemory(context.Background(), nil, "x"); errcode.Of(err) != errcode.TTSVoice {
		t.Fatalf("nil voice: want tts_voice, got %v", err)
	}

	stale := &Voice{ModelPath: filepath.Join(t.TempDir(), "gone.onnx")}
	if _, err := s.SynthesiseToMemory(context.Background(), stale, "x"); errcode.Of(err) != errcode.TTSVoice {
		t.Fatalf("stale voice: want tts_voice, got %v", err)
	}
}

func TestSaveWav_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio", "out.wav")
	samples := []byte{1, 2, 3, 4, 5, 6}

	if err := SaveWav(samples, 22050, path); err != nil {
		t.Fatalf("SaveWav: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read wav: %v", err)
	}
	if len(data) != 44+len(samples) {
		t.Fatalf("wav length %d, want %d", len(data), 44+len(samples))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("bad RIFF header: %q", data[:12])
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 22050 {
		t.Fatalf("sample rate %d, want 22050", rate)
	}
	if ch := binary.LittleEndian.Uint16(data[22:24]); ch != 1 {
		t.Fatalf("channels %d, want mono", ch)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 16 {
		t.Fatalf("bits %d, want 16", bits)
	}
	if dl := binary.LittleEndian.Uint32(data[40:44]); int(dl) != len(samples) {
		t.Fatalf("data length %d, want %d", dl, len(samples))
	}
}
