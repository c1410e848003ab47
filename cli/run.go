// cli/run.go
package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Prathmesh-K/SmartGlassesPi/services/controller"
	"github.com/Prathmesh-K/SmartGlassesPi/services/hal"
	"github.com/Prathmesh-K/SmartGlassesPi/services/pipeline"
	"github.com/Prathmesh-K/SmartGlassesPi/services/provision"
)

// pipelineRunner adapts the pipeline to the controller's Runner.
type pipelineRunner struct {
	p *pipeline.Pipeline
}

func (r pipelineRunner) CaptureAndSpeak(ctx context.Context) (string, error) {
	res, err := r.p.CaptureAndSpeak(ctx)
	if err != nil {
		return "", err
	}
	return res.PhotoPath, nil
}

// NewRunCommand creates the run command: provision, then listen for
// co-processor instructions on the serial link.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Provision GPIO and listen for co-processor instructions",
		Long: `Run the device controller.

Applies GPIO provisioning first, then blocks on the serial port dispatching
instructions from the co-processor: SLEEP suspends the host, CAPTURE runs
the capture-and-speak chain.`,
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
			err = provision.Apply(ctrl, provision.Params{
				WakePin:        cfg.Gpio.WakePin,
				SignalPin:      cfg.Gpio.SignalPin,
				BootConfigPath: cfg.Gpio.BootConfigPath,
			})
			if err != nil {
				return err
			}

			p, cleanup, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			port, err := controller.OpenPort(cfg.Serial.Port)
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := controller.New(port, pipelineRunner{p: p})
			return c.Listen(ctx)
		},
	}
}
