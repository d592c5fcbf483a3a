package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/clampwind/internal/log"
	"bennypowers.dev/clampwind/internal/version"
)

// flags holds the root command's flag values
type flags struct {
	write        bool
	outDir       string
	configPath   string
	tokens       []string
	rootFontSize float64
	spacing      float64
	precision    int
	lang         string
	logLevel     string
}

// NewRootCmd builds the clampwind command tree
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "clampwind [files or globs...]",
		Short: "Expand clamp(min, max) shorthands into fluid clamp() values",
		Long: `clampwind rewrites two-argument clamp(min, max) placeholders into fluid
clamp() values that interpolate between breakpoints.

Files may be CSS, HTML (<style> elements) or JavaScript/TypeScript (css
tagged templates). Without arguments, clampwind reads the files matched by
the "include" patterns of the project config, or else reads standard input
and writes the result to standard output.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(f.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.Debug("Command %s started", cmd.Name())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	pf := cmd.Flags()
	pf.BoolVarP(&f.write, "write", "w", false, "rewrite files in place")
	pf.StringVarP(&f.outDir, "out-dir", "o", "", "write results into this directory")
	pf.StringVarP(&f.configPath, "config", "c", "", "config file (default: package.json \"clampwind\" or .config/clampwind.{yaml,yml,json})")
	pf.StringArrayVar(&f.tokens, "tokens", nil, "design token file to read breakpoints from (repeatable)")
	pf.Float64Var(&f.rootFontSize, "root-font-size", 0, "root font size in px (default 16)")
	pf.Float64Var(&f.spacing, "spacing", 0, "spacing unit in rem (default 0.25)")
	pf.IntVar(&f.precision, "precision", 0, "decimals in generated values (default 4)")
	pf.StringVar(&f.lang, "lang", "css", "language of standard input: css, html, javascript, typescript")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "clampwind %s\n", version.Get())
			return err
		},
	}
}
