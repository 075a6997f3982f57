package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/gensuite/internal/app"
	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/infrastructure/config"
)

// Version is stamped at build time.
var Version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gensuite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "gensuite", Version)
		},
	}
}

func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gensuite configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value (e.g. ui.scheme)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.Context(), container, args[0], strings.Join(args[1:], " "))
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := container.ConfigLoader.Load(cmd.Context())
			if err != nil {
				return err
			}
			if diff := cmp.Diff(config.DefaultConfig(), current); diff != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Reverted customizations (-default +current):")
				fmt.Fprint(cmd.OutOrStdout(), diff)
			}
			if _, err := container.ConfigLoader.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset at %s\n", container.ConfigLoader.Path())
			return nil
		},
	}

	configCmd.AddCommand(showCmd, getCmd, setCmd, resetCmd)
	return configCmd
}

func runConfigShow(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigLoader.Load(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigGet(ctx context.Context, out io.Writer, container *app.Container, key string) error {
	cfg, err := container.ConfigLoader.Load(ctx)
	if err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var generic map[string]interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return err
	}
	value, ok := traverseKey(generic, strings.Split(key, "."))
	if !ok {
		return fmt.Errorf("key %s not found", key)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigSet(ctx context.Context, container *app.Container, key, value string) error {
	cfg, err := container.ConfigLoader.Load(ctx)
	if err != nil {
		return err
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	cfgMap := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &cfgMap); err != nil {
		return err
	}

	var parsedValue interface{}
	if err := yaml.Unmarshal([]byte(value), &parsedValue); err != nil {
		return fmt.Errorf("invalid value %q: %w", value, err)
	}
	if !setMapValue(cfgMap, strings.Split(key, "."), parsedValue) {
		return fmt.Errorf("unable to set key %s", key)
	}

	updatedRaw, err := yaml.Marshal(cfgMap)
	if err != nil {
		return err
	}
	var updated domain.Config
	if err := yaml.Unmarshal(updatedRaw, &updated); err != nil {
		return err
	}
	if !domain.ValidScheme(updated.UI.Scheme) {
		return fmt.Errorf("unknown scheme %q (one of: %s)", updated.UI.Scheme, strings.Join(domain.SchemeNames(), ", "))
	}
	return container.ConfigLoader.Save(ctx, updated)
}

func traverseKey(data interface{}, path []string) (interface{}, bool) {
	if len(path) == 0 {
		return data, true
	}
	switch node := data.(type) {
	case map[string]interface{}:
		next, ok := node[path[0]]
		if !ok {
			return nil, false
		}
		return traverseKey(next, path[1:])
	default:
		return nil, false
	}
}

func setMapValue(node map[string]interface{}, path []string, value interface{}) bool {
	if len(path) == 0 {
		return false
	}
	if len(path) == 1 {
		node[path[0]] = value
		return true
	}
	next, ok := node[path[0]].(map[string]interface{})
	if !ok {
		return false
	}
	return setMapValue(next, path[1:], value)
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd.OutOrStdout(), container, 20)
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd.OutOrStdout(), container, limit)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				return fmt.Errorf("history is disabled in configuration")
			}
			if err := container.History.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}

func runHistoryList(out io.Writer, container *app.Container, limit int) error {
	if container.History == nil {
		return fmt.Errorf("history is disabled in configuration")
	}
	records, err := container.History.List(limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}
	for _, rec := range records {
		capped := ""
		if rec.Capped {
			capped = " (capped)"
		}
		fmt.Fprintf(out, "%s  %-12s  %9s %s  %8s%s\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Kind,
			domain.FormatCount(rec.Magnitude),
			rec.Kind.Unit(),
			domain.FormatDuration(time.Duration(rec.ElapsedMS)*time.Millisecond),
			capped,
		)
	}
	return nil
}
