// cli/provision.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Prathmesh-K/SmartGlassesPi/services/hal"
	"github.com/Prathmesh-K/SmartGlassesPi/services/provision"
)

// NewProvisionCommand creates the provision command.
func NewProvisionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Configure wake/signal GPIO pins and enable wake-on-GPIO at boot",
		Long: `One-shot provisioning for the wake handshake.

Sets the wake pin as input with pull-down, the co-processor signal pin as
output driven low, and upserts WAKE_ON_GPIO=<pin> into the bootloader config
file. Safe to re-run; nothing changes once applied. Both steps must be done
before the next power-cycle for wake to take effect.

Writing the boot config file requires elevated privilege.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			ctrl, err := hal.NewPinctrlController(cfg.Gpio.PinctrlCommand)
			if err != nil {
				return err
			}
			p := provision.Params{
				WakePin:        cfg.Gpio.WakePin,
				SignalPin:      cfg.Gpio.SignalPin,
				BootConfigPath: cfg.Gpio.BootConfigPath,
			}
			if err := provision.Apply(ctrl, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"provisioned: wake pin %d (input, pull-down), signal pin %d (output, low), %s ensured in %s\n",
				p.WakePin, p.SignalPin, provision.BootWakeLine(p.WakePin), p.BootConfigPath)
			return nil
		},
	}
}
