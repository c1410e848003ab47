// cli/speak.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Prathmesh-K/SmartGlassesPi/services/ocr"
	"github.com/Prathmesh-K/SmartGlassesPi/services/tts"
)

// SpeakOptions holds flags for the speak command.
type SpeakOptions struct {
	*RootOptions
	Output       string
	FallbackText string
}

// NewSpeakCommand creates the speak command: OCR an existing image and speak it.
func NewSpeakCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SpeakOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "speak <image>",
		Short: "Recognize text in an existing image and synthesise speech",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			voice, synth, err := buildSpeech(cfg)
			if err != nil {
				return err
			}

			engine := ocr.NewTesseractEngine(cfg.OCR.Languages...)
			stream, err := ocr.DetectText(cmd.Context(), engine, args[0])
			if err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(stream.Collect(), " "))
			if text == "" {
				text = opts.FallbackText
			}

			audio, err := synth.SynthesiseToMemory(cmd.Context(), voice, text)
			if err != nil {
				return err
			}
			if err := tts.SaveWav(audio, voice.SampleRate, opts.Output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "text:  %s\n", text)
			fmt.Fprintf(out, "audio: %s\n", opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "output.wav", "where to save the generated WAV file")
	cmd.Flags().StringVar(&opts.FallbackText, "fallback-text", "No text detected in image.", "message to speak if no text is found")
	return cmd
}
