package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab.com/stephen-fox/artshadow/conv"
	"gitlab.com/stephen-fox/artshadow/memory"
	"gitlab.com/stephen-fox/artshadow/shadow"
)

type app struct {
	cfg      config
	logger   *zap.Logger
	registry *shadow.Registry
	resolver *shadow.Resolver
}

// newRootCmd creates the command tree. A nil logger is replaced by one
// built from the verbose flag.
func newRootCmd(cfg config, logger *zap.Logger) *cobra.Command {
	a := &app{
		cfg:    cfg,
		logger: logger,
	}

	root := &cobra.Command{
		Use:   "shadowdump",
		Short: "Print the field offsets of ART runtime shadows",
		Long: "Print the field offsets of the shadow types that mirror ART's runtime objects.\n" +
			"Offsets are resolved for a target platform from the built-in catalog,\n" +
			"or from a YAML catalog file.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfg.Platform, "platform", "p", cfg.Platform,
		fmt.Sprintf("Target platform (%s). Default: $%s", strings.Join(shadow.PlatformNames(), ", "), platformEnv))
	flags.StringVarP(&a.cfg.Catalog, "catalog", "c", cfg.Catalog,
		"YAML catalog that replaces the built-in one. Default: $"+catalogEnv)
	flags.IntVarP(&a.cfg.APILevel, "api-level", "a", cfg.APILevel,
		"Refuse to run unless the catalog supports this runtime API level. Default: $"+apiLevelEnv)
	flags.BoolVarP(&a.cfg.Verbose, "verbose", "v", cfg.Verbose,
		"Enable verbose logging")

	root.AddCommand(
		a.kindsCmd(),
		a.offsetsCmd(),
		a.resolveCmd(),
		a.verifyCmd())

	return root
}

func (o *app) setup(cmd *cobra.Command, args []string) error {
	err := o.cfg.validate()
	if err != nil {
		return err
	}

	if o.logger == nil {
		o.logger, err = newLogger(o.cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger - %w", err)
		}
	}

	o.registry = shadow.NewRegistry(shadow.ARTCatalog(), o.logger)

	if o.cfg.Catalog != "" {
		loaded, err := shadow.LoadCatalogFile(o.cfg.Catalog)
		if err != nil {
			return err
		}

		_, err = o.registry.Swap(loaded)
		if err != nil {
			return err
		}
	}

	if o.cfg.APILevel > 0 {
		err = o.registry.Verify(o.cfg.APILevel)
		if err != nil {
			return err
		}
	}

	platform, err := shadow.PlatformByName(o.cfg.Platform)
	if err != nil {
		return err
	}

	o.resolver, err = shadow.NewResolver(platform, shadow.WithLogger(o.logger))
	if err != nil {
		return err
	}

	o.logger.Debug("ready",
		zap.String("platform", platform.Name),
		zap.Stringer("catalog", o.registry.Catalog().Version()))

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (o *app) kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List shadow kinds and the runtime types they mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, kind := range shadow.Kinds() {
				t, err := o.registry.Shadow(kind)
				if errors.Is(err, shadow.ErrConfiguration) {
					fmt.Fprintf(tw, "%s\t(not cataloged)\n", kind)
					continue
				} else if err != nil {
					return err
				}

				fmt.Fprintf(tw, "%s\t%s\n", kind, t.Name())
			}

			return tw.Flush()
		},
	}
}

func (o *app) offsetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offsets [kind...]",
		Short: "Print the layout of each shadow kind",
		Long: "Print the layout of each named shadow kind, or of every kind in the catalog\n" +
			"when none are named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := o.kindsFromArgs(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if o.cfg.Format == symbolsFormat {
				return o.writeSymbols(out, kinds)
			}

			for i, kind := range kinds {
				t, err := o.registry.Shadow(kind)
				if err != nil {
					return err
				}

				layout, err := o.resolver.Layout(t)
				if err != nil {
					return err
				}

				if i > 0 {
					io.WriteString(out, "\n")
				}

				err = writeLayout(out, o.cfg.Format, kind, layout)
				if err != nil {
					return fmt.Errorf("failed to write %s layout - %w", kind, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&o.cfg.Format, "format", "f", o.cfg.Format,
		fmt.Sprintf("Output format (%s)", strings.Join(formats, ", ")))

	return cmd
}

func (o *app) kindsFromArgs(args []string) ([]shadow.Kind, error) {
	if len(args) == 0 {
		return o.registry.Catalog().Kinds(), nil
	}

	kinds := make([]shadow.Kind, 0, len(args))
	for _, arg := range args {
		kind, err := shadow.ParseKind(arg)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}

	return kinds, nil
}

// writeSymbols prints one "<shadow>.<field>" symbol per line, sorted,
// from an offset table holding the platform's context.
func (o *app) writeSymbols(w io.Writer, kinds []shadow.Kind) error {
	context := o.resolver.Platform().Name
	table := memory.NewOffsetTable(context)

	for _, kind := range kinds {
		t, err := o.registry.Shadow(kind)
		if err != nil {
			return err
		}

		err = table.AddShadowInContext(o.resolver, t, context)
		if err != nil {
			return fmt.Errorf("failed to add %s to offset table - %w", kind, err)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, symbol := range table.Symbols() {
		offset, err := table.Offset(symbol)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%s\n", symbol, offset)
	}

	return tw.Flush()
}

func writeLayout(w io.Writer, format string, kind shadow.Kind, layout shadow.Layout) error {
	switch format {
	case goFormat:
		return conv.LayoutToGoConsts(w, kind.String(), layout)
	case cFormat:
		return conv.LayoutToCDefines(w, kind.String(), layout)
	default:
		return writeLayoutText(w, layout)
	}
}

func writeLayoutText(w io.Writer, layout shadow.Layout) error {
	fmt.Fprintf(w, "%s (%s) size %d\n", layout.Shadow, layout.Platform, layout.Size)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, fd := range layout.Fields {
		fmt.Fprintf(tw, "  %s\t%s\t%s", fd.Offset, fd.Kind, fd.Name)
		if fd.Owner != layout.Shadow {
			fmt.Fprintf(tw, "\t(%s)", fd.Owner)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func (o *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve kind field",
		Short: "Print the offset of one field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := shadow.ParseKind(args[0])
			if err != nil {
				return err
			}

			t, err := o.registry.Shadow(kind)
			if err != nil {
				return err
			}

			offset, err := o.resolver.Resolve(t, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), offset)

			return nil
		},
	}
}

func (o *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the catalog supports --api-level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg.APILevel <= 0 {
				return errors.New("an api level must be specified with --api-level or $" + apiLevelEnv)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s supports api level %d\n",
				o.registry.Catalog().Version(), o.cfg.APILevel)

			return nil
		},
	}
}
