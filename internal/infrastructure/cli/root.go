package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/gensuite/internal/app"
	"github.com/doeshing/gensuite/internal/application/resolver"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Zero arguments enter the
// interactive session; any arguments are joined into one phrase and
// routed through the command resolver.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	theme := NewTheme(container.Config.UI.Scheme, ColorEnabled())
	console := NewConsole(nil, nil, theme, container.Config.UI.Animations && ColorEnabled())
	container.Session.Console = console
	container.Session.Exporter = NewFileExporter(console)
	container.Governor.Prompter = console

	root := &cobra.Command{
		Use:   "gensuite [request]",
		Short: "gensuite - governed generative computation",
		Long: "gensuite runs large pi, prime and benchmark workloads against a wall-clock\n" +
			"budget, calibrating the compute engine before committing to expensive requests.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := resolver.ResolveArgs(args)
			return container.Session.RunOnce(cmd.Context(), intent)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}
