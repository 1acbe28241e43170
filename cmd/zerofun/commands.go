package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/copyleftdev/zerofun/internal/config"
	"github.com/copyleftdev/zerofun/internal/dispatch"
	"github.com/copyleftdev/zerofun/internal/expr"
	"github.com/copyleftdev/zerofun/internal/logging"
	"github.com/copyleftdev/zerofun/internal/rootfind"
)

// options holds the flags shared by every command.
type options struct {
	file       string
	method     string
	expression string
	derivative string
	set        []string
	quiet      bool
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "zerofun",
		Short:         "Find a zero of a scalar function",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.file, "file", "f", "", "YAML datafile with method, expression and parameters")
	pf.StringVarP(&opts.method, "method", "m", "", "solver method (see 'zerofun methods')")
	pf.StringVarP(&opts.expression, "expr", "e", "", "function of x, e.g. '0.5 - exp(pi*x)'")
	pf.StringVarP(&opts.derivative, "deriv", "d", "", "derivative of the function, required by Newton")
	pf.StringArrayVar(&opts.set, "set", nil, "override a parameter, e.g. --set tol=1e-8 --set bracket.enabled=true")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress solver diagnostics")
	pf.StringVar(&opts.logLevel, "log-level", "info", "diagnostic level (debug, info, warn)")
	pf.StringVar(&opts.logFormat, "log-format", "console", "diagnostic format (console, json)")

	root.AddCommand(newSolveCmd(opts), newBracketCmd(opts), newMethodsCmd())
	return root
}

func newSolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve f(x) = 0 with the selected method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := opts.datafile()
			if err != nil {
				return err
			}
			method, err := dispatch.ParseMethod(df.Method)
			if err != nil {
				return err
			}
			f, deriv, err := compile(df)
			if err != nil {
				return err
			}

			logger, err := opts.zapLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			solver, err := dispatch.Build(method, f, deriv, df.Parameters, opts.reporter(logger))
			if err != nil {
				return err
			}

			root := solver.Solve()
			if rootfind.IsFailure(root) {
				return fmt.Errorf("no zero found with %s method", method)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Zero found with %s method is: %.15g\n", method, root)
			return nil
		},
	}
}

func newBracketCmd(opts *options) *cobra.Command {
	var scan int

	cmd := &cobra.Command{
		Use:   "bracket",
		Short: "Search for an interval across which f changes sign",
		Long: `Search for an interval across which f changes sign.

By default the search starts at bracket.x1 with step h_interval and expands
for at most maxIter steps. With --scan N the interval [a, b] is sampled at N
evenly spaced points instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := opts.datafile()
			if err != nil {
				return err
			}
			f, _, err := compile(df)
			if err != nil {
				return err
			}

			logger, err := opts.zapLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			p := df.Parameters
			var iv rootfind.Interval
			var found bool
			if scan > 0 {
				iv, found = rootfind.Scan(f, p.A, p.B, scan, opts.reporter(logger))
			} else {
				var low, high float64
				low, high, found = rootfind.BracketInterval(f, p.Bracket.X1, p.HInterval, p.MaxIter, opts.reporter(logger))
				iv = rootfind.Between(low, high)
			}
			if !found {
				return fmt.Errorf("no sign change found")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bracket interval: [%.15g, %.15g]\n", iv.A, iv.B)
			return nil
		},
	}

	cmd.Flags().IntVar(&scan, "scan", 0, "sample [a, b] at this many points instead of the expanding search")
	return cmd
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the supported methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range dispatch.Methods() {
				kind := "start point"
				if dispatch.Bracketing(m) {
					kind = "interval"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", m, kind)
			}
			return nil
		},
	}
}

// datafile loads the datafile, if any, and applies the flag overrides.
func (o *options) datafile() (*config.Datafile, error) {
	df := config.NewDatafile()
	if o.file != "" {
		var err error
		if df, err = config.LoadDatafile(o.file); err != nil {
			return nil, err
		}
	}

	if o.method != "" {
		df.Method = o.method
	}
	if df.Method == "" {
		df.Method = string(rootfind.MethodBrent)
	}
	if o.expression != "" {
		df.Expression = o.expression
		df.Derivative = ""
	}
	if o.derivative != "" {
		df.Derivative = o.derivative
	}
	if err := applyOverrides(&df.Parameters, o.set); err != nil {
		return nil, err
	}
	return df, df.Parameters.Validate()
}

func compile(df *config.Datafile) (f, deriv rootfind.Func, err error) {
	e, err := expr.Parse(df.Expression)
	if err != nil {
		return nil, nil, err
	}
	if df.Derivative == "" {
		return e.Func(), nil, nil
	}
	d, err := expr.Parse(df.Derivative)
	if err != nil {
		return nil, nil, err
	}
	return e.Func(), d.Func(), nil
}

func (o *options) reporter(logger *zap.Logger) rootfind.Option {
	if o.quiet {
		return rootfind.Quiet()
	}
	return rootfind.WithReporter(rootfind.ZapReporter(logger))
}

// zapLogger builds the diagnostic logger writing to the command's stderr.
func (o *options) zapLogger(cmd *cobra.Command) (*zap.Logger, error) {
	switch strings.ToLower(o.logFormat) {
	case "json":
		return logging.NewZapLogger(logging.New(logging.ParseLevel(o.logLevel), cmd.ErrOrStderr())), nil
	case "console", "":
		level, err := zapcore.ParseLevel(o.logLevel)
		if err != nil {
			return nil, err
		}
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.TimeKey = ""
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(cmd.ErrOrStderr()), level)
		return zap.New(core), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", o.logFormat)
	}
}
