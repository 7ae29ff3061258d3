package app

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Options are the flags shared by all subcommands.
type Options struct {
	Verbose bool
	// Output is the file that modifying subcommands write to. Empty means
	// overwriting the input file.
	Output string
}

func NewOptions() *Options {
	return &Options{}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "log debug messages")
}

func (o *Options) AddOutputFlag(fs *pflag.FlagSet, usage string) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, usage)
}

// Logger builds the logger used by the subcommands. Logs go to stderr so
// that they don't mix with command output.
func (o *Options) Logger() (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if o.Verbose {
		config.Level.SetLevel(zap.DebugLevel)
	}
	config.DisableStacktrace = true
	rawLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %v", err)
	}
	return rawLogger.Sugar(), nil
}

// rangeFlags select evenly spaced x values.
type rangeFlags struct {
	From  float64
	To    float64
	Steps int
}

func (r *rangeFlags) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&r.From, "from", r.From, "first x to sample; defaults to the first knot's x")
	fs.Float64Var(&r.To, "to", r.To, "last x to sample; defaults to the last knot's x")
	fs.IntVar(&r.Steps, "steps", 10, "number of intervals between from and to")
}

// Validate checks the flags. from and to are only checked when set.
func (r *rangeFlags) Validate(fs *pflag.FlagSet) error {
	if r.Steps <= 0 {
		return fmt.Errorf("--steps must be positive, got %d", r.Steps)
	}
	if fs.Changed("from") && fs.Changed("to") && r.From > r.To {
		return fmt.Errorf("--from (%g) must not be larger than --to (%g)", r.From, r.To)
	}
	return nil
}
