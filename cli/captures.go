// cli/captures.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Prathmesh-K/SmartGlassesPi/services/store"
)

// CapturesOptions holds flags for the captures command.
type CapturesOptions struct {
	*RootOptions
	Limit int
}

// NewCapturesCommand creates the captures command: list the journal.
func NewCapturesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CapturesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "captures",
		Short: "List recent entries from the capture journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			if cfg.Journal.Path == "" {
				return fmt.Errorf("no capture journal configured (set journal.path)")
			}
			st, err := store.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			rows, err := st.RecentCaptures(cmd.Context(), opts.Limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No captures recorded")
				return nil
			}
			for _, c := range rows {
				fmt.Fprintf(out, "%s  %s  %q", c.CreatedAt.Format("2006-01-02 15:04:05"), c.PhotoPath, c.Text)
				if c.UploadURL != "" {
					fmt.Fprintf(out, "  %s", c.UploadURL)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum entries to list")
	return cmd
}
