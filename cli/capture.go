// cli/capture.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Prathmesh-K/SmartGlassesPi/services/tts"
)

// CaptureOptions holds flags for the capture command.
type CaptureOptions struct {
	*RootOptions
	Output string
}

// NewCaptureCommand creates the capture command: take a photo, read it, speak it.
func NewCaptureCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CaptureOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a photo, recognize its text and synthesise speech",
		Long: `Run the full chain: camera capture, text recognition, speech synthesis.

Any failure aborts the chain; a camera failure means recognition and
synthesis are never attempted. On memory-constrained hardware the
recognition step may be killed by the system.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			p, cleanup, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := p.CaptureAndSpeak(cmd.Context())
			if err != nil {
				return err
			}

			if err := tts.SaveWav(res.Audio, res.SampleRate, opts.Output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "photo: %s\n", res.PhotoPath)
			fmt.Fprintf(out, "text:  %s\n", res.Text)
			fmt.Fprintf(out, "audio: %s\n", opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "output.wav", "where to save the generated WAV file")
	return cmd
}
