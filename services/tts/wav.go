// services/tts/wav.go
package tts

import (
	"encoding/binary"
	"os"
	"path/filepath"
)

// SaveWav persists raw 16-bit mono PCM samples as a WAV file, creating parent
// directories as needed.
func SaveWav(samples []byte, sampleRate int, outputPath string) error {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(outputPath, append(wavHeader(len(samples), sampleRate), samples...), 0o644)
}

// wavHeader builds the 44-byte RIFF header for 16-bit mono PCM.
func wavHeader(dataLen, sampleRate int) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	blockAlign := numChannels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	h := make([]byte, 0, 44)
	le := binary.LittleEndian

	h = append(h, "RIFF"...)
	h = le.AppendUint32(h, uint32(36+dataLen))
	h = append(h, "WAVE"...)

	h = append(h, "fmt "...)
	h = le.AppendUint32(h, 16)
	h = le.AppendUint16(h, 1) // PCM
	h = le.AppendUint16(h, numChannels)
	h = le.AppendUint32(h, uint32(sampleRate))
	h = le.AppendUint32(h, uint32(byteRate))
	h = le.AppendUint16(h, uint16(blockAlign))
	h = le.AppendUint16(h, bitsPerSample)

	h = append(h, "data"...)
	h = le.AppendUint32(h, uint32(dataLen))
	return h
}
