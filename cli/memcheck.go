// cli/memcheck.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Prathmesh-K/SmartGlassesPi/services/pipeline"
)

// NewMemcheckCommand creates the memcheck command.
func NewMemcheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "memcheck",
		Short: "Check whether available memory is enough for the OCR model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, avail := pipeline.CheckMemory()
			out := cmd.OutOrStdout()
			switch status {
			case pipeline.MemoryOK:
				fmt.Fprintf(out, "ok: %.1f GiB available, enough for the full workflow\n", gib(avail))
			case pipeline.MemoryDegraded:
				fmt.Fprintf(out, "degraded: %.1f GiB available, recognition may be slow\n", gib(avail))
			case pipeline.MemoryLow:
				fmt.Fprintf(out, "low: %.1f GiB available, recognition is likely to fail\n", gib(avail))
			default:
				fmt.Fprintln(out, "unknown: could not read memory statistics")
			}
			return nil
		},
	}
}

func gib(b uint64) float64 { return float64(b) / (1 << 30) }
