package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sglre6355/accord/internal/accord"
	"github.com/sglre6355/accord/internal/accord/bottransport"
	"github.com/sglre6355/accord/internal/bot"
	"github.com/sglre6355/accord/internal/logging"
	testmodule "github.com/sglre6355/accord/internal/modules/test"
	"github.com/sglre6355/accord/internal/scenario"
)

var version = "dev"

var osExit = os.Exit

// errScenariosFailed signals a run with failures; the report already explains them.
var errScenariosFailed = errors.New("scenarios failed")

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "accord",
		Short:         "Run acceptance scenarios against a simulated Discord bot",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(logLevel, logFormat)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCommandsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// newEngine starts an engine driving a fresh fixture bot.
func newEngine(ctx context.Context) (*accord.Engine, error) {
	cfg, err := accord.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	transport, err := bottransport.New(bot.WithModules(testmodule.New()))
	if err != nil {
		return nil, err
	}
	return accord.New(ctx, transport, accord.WithConfig(*cfg))
}

func newRunCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:     "run <files...>",
		Aliases: []string{"r"},
		Short:   "Run YAML scenario files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := scenario.Load(args...)
			if err != nil {
				return err
			}

			results := scenario.NewRunner(newEngine, scenario.WithWorkers(workers)).Run(cmd.Context(), scenarios)

			summary, err := scenario.Report(cmd.OutOrStdout(), results)
			if err != nil {
				return err
			}
			if summary.Failed > 0 {
				return errScenariosFailed
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "scenarios run concurrently")
	return cmd
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the fixture bot's slash commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCommands(cmd.OutOrStdout(), testmodule.New().Commands())
		},
	}
}

func printCommands(w io.Writer, cmds []*discordgo.ApplicationCommand) error {
	for _, c := range cmds {
		opts := make([]string, len(c.Options))
		for i, o := range c.Options {
			opt := fmt.Sprintf("%s:%s", o.Name, optionTypeName(o.Type))
			if !o.Required {
				opt = "[" + opt + "]"
			}
			opts[i] = opt
		}
		line := strings.TrimSpace(fmt.Sprintf("/%s %s", c.Name, strings.Join(opts, " ")))
		if _, err := fmt.Fprintf(w, "%-40s %s\n", line, c.Description); err != nil {
			return err
		}
	}
	return nil
}

func optionTypeName(t discordgo.ApplicationCommandOptionType) string {
	switch t {
	case discordgo.ApplicationCommandOptionString:
		return "string"
	case discordgo.ApplicationCommandOptionInteger:
		return "integer"
	case discordgo.ApplicationCommandOptionBoolean:
		return "boolean"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "accord %s\n", version)
		},
	}
}
