package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andy/quickinvoice/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "quickinvoice",
	Short: "Create professional invoices from the terminal",
	Long: `quickinvoice builds invoices from a form, keeps them in an encrypted local
store and prints them as PDF, HTML or plain text in one of five templates.

By default, running quickinvoice without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE:         launchTUI,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// standalone commands run without opening the database
var standalone = map[string]bool{
	"help":       true,
	"templates":  true,
	"config":     true,
	"completion": true,
}

// NeedsApp reports whether the command line needs the database and keyring.
// Only the command path counts, so a flag value such as --client-name config
// does not make a command standalone.
func NeedsApp(args []string) bool {
	cmd, rest, err := rootCmd.Find(args)
	if err != nil {
		// help, completion and unknown commands are resolved by cobra itself
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if standalone[c.Name()] {
			return false
		}
	}
	return !helpRequested(cmd, rest)
}

// helpRequested reports whether -h or --help appears as a flag, skipping
// the values of flags that take one
func helpRequested(cmd *cobra.Command, args []string) bool {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return false
		case a == "-h" || a == "--help":
			return true
		case strings.HasPrefix(a, "--") && !strings.Contains(a, "="):
			if takesValue(lookupFlag(cmd, a[2:])) {
				i++
			}
		case strings.HasPrefix(a, "-") && len(a) == 2:
			if takesValue(lookupShorthand(cmd, a[1:])) {
				i++
			}
		}
	}
	return false
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

func lookupShorthand(cmd *cobra.Command, short string) *pflag.Flag {
	if f := cmd.Flags().ShorthandLookup(short); f != nil {
		return f
	}
	return cmd.InheritedFlags().ShorthandLookup(short)
}

func takesValue(f *pflag.Flag) bool {
	return f != nil && f.NoOptDefVal == ""
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
