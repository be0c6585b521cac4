// Command field-trace replays a script of field operations and prints every
// published snapshot as a JSON line.
//
//	$ printf 'autovalidate on\nset\nset taken\n' | field-trace
//	{"seq":1,"state":{"value":"","error":null,"autovalidate":true,"read_only":false,"edited_manually":false}}
//	...
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/billie-coop/fieldstate/internal/field"
	"github.com/billie-coop/fieldstate/internal/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		debounce time.Duration
		verbose  bool
		jsonLogs bool
	)

	cmd := &cobra.Command{
		Use:   "field-trace [script]",
		Short: "Replay field operations and print each snapshot",
		Long: `field-trace reads one command per line from a script file, or stdin when
no file is given:

  set <value>            force <value>       validate
  autovalidate on|off    readonly on|off     edited on|off
  error <message>        clear               wait <duration>

The field rejects empty values synchronously and "taken" asynchronously.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			steps, err := ParseScript(in)
			if err != nil {
				return err
			}

			format := logger.FormatText
			if jsonLogs {
				format = logger.FormatJSON
			}
			log := logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithFormat(format),
				logger.WithDebug(verbose),
			)

			return NewRunner(cmd.OutOrStdout(), debounce, log).Run(cmd.Context(), steps)
		},
	}

	cmd.Flags().DurationVarP(&debounce, "debounce", "d", field.DefaultDebounce, "async validation quiet period")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every step to stderr")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "log as JSON instead of text")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
