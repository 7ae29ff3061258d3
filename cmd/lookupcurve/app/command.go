package app

import (
	"fmt"
	"io"
	"os"
	"strconv"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"honnef.co/go/lookupcurve"
	"honnef.co/go/lookupcurve/curvefile"
)

type cli struct {
	opts   *Options
	logger *zap.SugaredLogger
}

// NewLookupCurveCommand returns the root command of the lookupcurve tool.
func NewLookupCurveCommand() *cobra.Command {
	c := &cli{opts: NewOptions()}

	cmd := &cobra.Command{
		Use:   "lookupcurve",
		Short: "Sample, preview and edit lookup curve files",
		Long: `lookupcurve works with YAML lookup curve documents.

Negative x values must follow a "--" argument so that they aren't parsed as
flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.opts.Logger()
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	c.opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		c.newSampleCommand(),
		c.newTableCommand(),
		c.newKnotsCommand(),
		c.newSVGCommand(),
		c.newMoveCommand(),
		c.newAddCommand(),
		c.newDeleteCommand(),
	)
	return cmd
}

func (c *cli) load(path string) (*lookupcurve.LookupCurve, error) {
	curve, err := curvefile.Load(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debugw("Loaded curve", "file", path, "knots", curve.Len())
	return curve, nil
}

func (c *cli) save(input string, curve *lookupcurve.LookupCurve) error {
	path := c.opts.Output
	if path == "" {
		path = input
	}
	if err := curvefile.Save(path, curve); err != nil {
		return err
	}
	c.logger.Infow("Saved curve", "file", path, "knots", curve.Len())
	return nil
}

func (c *cli) sample(curve *lookupcurve.LookupCurve, x float64) float64 {
	y, converged := curve.FindYGivenXConverged(x)
	if !converged {
		c.logger.Debugw("Newton's method did not converge, bracketed instead", "x", x)
	}
	return y
}

func parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return f, nil
}

// checkPosition rejects positions that can't be stored in a curve file.
func checkPosition(p lookupcurve.Point) error {
	if p.IsNaN() || p.IsInf() {
		return fmt.Errorf("position %s must be finite", p)
	}
	return nil
}

func (c *cli) newSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample FILE X...",
		Short: "Print the curve's y for each x",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := c.load(args[0])
			if err != nil {
				return err
			}
			for _, arg := range args[1:] {
				x, err := parseFloat("x", arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%g\t%g\n", x, c.sample(curve, x))
			}
			return nil
		},
	}
}

func (c *cli) newTableCommand() *cobra.Command {
	var r rangeFlags
	cmd := &cobra.Command{
		Use:   "table FILE",
		Short: "Print evenly spaced samples of the curve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.Validate(cmd.Flags()); err != nil {
				return err
			}
			curve, err := c.load(args[0])
			if err != nil {
				return err
			}
			if n := curve.Len(); n > 0 {
				if !cmd.Flags().Changed("from") {
					r.From = curve.Knot(0).Position.X
				}
				if !cmd.Flags().Changed("to") {
					r.To = curve.Knot(n - 1).Position.X
				}
			}

			w := prettytable.NewWriter()
			w.AppendHeader(prettytable.Row{"x", "y"})
			for i := range r.Steps + 1 {
				x := r.From + (r.To-r.From)*float64(i)/float64(r.Steps)
				w.AppendRow(prettytable.Row{formatFloat(x), formatFloat(c.sample(curve, x))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Render())
			return nil
		},
	}
	r.AddFlags(cmd.Flags())
	return cmd
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func (c *cli) newKnotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "knots FILE",
		Short: "List the curve's knots in sorted order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := c.load(args[0])
			if err != nil {
				return err
			}
			w := prettytable.NewWriter()
			w.AppendHeader(prettytable.Row{"#", "ID", "Position", "Interpolation", "Left tangent", "Right tangent"})
			for i, k := range curve.Knots() {
				w.AppendRow(prettytable.Row{i, k.ID, k.Position, k.Interpolation, k.LeftTangent, k.RightTangent})
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Render())
			return nil
		},
	}
}

type svgFlags struct {
	Width     float64
	Height    float64
	Margin    float64
	Precision int
}

func (c *cli) newSVGCommand() *cobra.Command {
	f := svgFlags{Width: 400, Height: 300, Margin: 10, Precision: 3}
	cmd := &cobra.Command{
		Use:   "svg FILE",
		Short: "Render a preview of the curve as an SVG document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.Width <= 2*f.Margin || f.Height <= 2*f.Margin {
				return fmt.Errorf("image of %gx%g is too small for a margin of %g", f.Width, f.Height, f.Margin)
			}
			curve, err := c.load(args[0])
			if err != nil {
				return err
			}
			if curve.Len() == 0 {
				return fmt.Errorf("%s: curve has no knots", args[0])
			}

			if c.opts.Output == "" {
				return writeSVGDocument(cmd.OutOrStdout(), curve, f)
			}
			fd, err := os.Create(c.opts.Output)
			if err != nil {
				return err
			}
			if err := writeSVGDocument(fd, curve, f); err != nil {
				fd.Close()
				return err
			}
			if err := fd.Close(); err != nil {
				return err
			}
			c.logger.Infow("Wrote preview", "file", c.opts.Output)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&f.Width, "width", f.Width, "image width")
	fs.Float64Var(&f.Height, "height", f.Height, "image height")
	fs.Float64Var(&f.Margin, "margin", f.Margin, "space around the curve")
	fs.IntVar(&f.Precision, "precision", f.Precision, "maximum number of decimals of coordinates")
	c.opts.AddOutputFlag(fs, "file to write the document to instead of stdout")
	return cmd
}

func writeSVGDocument(w io.Writer, curve *lookupcurve.LookupCurve, f svgFlags) error {
	dst := lookupcurve.Rect{X1: f.Width, Y1: f.Height}.Inflate(-f.Margin, -f.Margin)
	aff := lookupcurve.FitRect(curve.BoundingBox(), dst)
	opts := lookupcurve.SVGOptions{MaxPrecision: f.Precision}

	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		f.Width, f.Height, f.Width, f.Height); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, `<path fill="none" stroke="black" stroke-width="1.5" d="`); err != nil {
		return err
	}
	if err := lookupcurve.WriteSVG(w, lookupcurve.TransformElements(curve.PathElements(), aff), opts); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, `"/>`+"\n"); err != nil {
		return err
	}
	for _, k := range curve.Knots() {
		p := k.Position.Transform(aff)
		if _, err := fmt.Fprintf(w, `<circle cx="%.*f" cy="%.*f" r="3" fill="red"><title>knot %d</title></circle>`+"\n",
			f.Precision, p.X, f.Precision, p.Y, k.ID); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</svg>")
	return err
}

func (c *cli) newMoveCommand() *cobra.Command {
	var (
		id   int
		x, y float64
	)
	cmd := &cobra.Command{
		Use:   "move FILE",
		Short: "Move the knot with the given ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := c.load(args[0])
			if err != nil {
				return err
			}
			i, ok := curve.IndexOfID(id)
			if !ok {
				return fmt.Errorf("no knot with ID %d", id)
			}
			k := curve.Knot(i)
			if cmd.Flags().Changed("x") {
				k.Position.X = x
			}
			if cmd.Flags().Changed("y") {
				k.Position.Y = y
			}
			if err := checkPosition(k.Position); err != nil {
				return err
			}
			newI := curve.ModifyKnot(i, k)
			c.logger.Debugw("Moved knot", "id", id, "from", i, "to", newI, "position", k.Position)
			return c.save(args[0], curve)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&id, "id", 0, "ID of the knot to move")
	fs.Float64Var(&x, "x", 0, "new x position")
	fs.Float64Var(&y, "y", 0, "new y position")
	_ = cmd.MarkFlagRequired("id")
	c.opts.AddOutputFlag(fs, "file to save the curve to instead of FILE")
	return cmd
}

func (c *cli) newAddCommand() *cobra.Command {
	var (
		x, y          float64
		interpolation string
	)
	cmd := &cobra.Command{
		Use:   "add FILE",
		Short: "Add a knot with a new ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip, err := lookupcurve.ParseInterpolation(interpolation)
			if err != nil {
				return err
			}
			pos := lookupcurve.Pt(x, y)
			if err := checkPosition(pos); err != nil {
				return err
			}
			curve, err := c.load(args[0])
			if err != nil {
				return err
			}
			k := lookupcurve.DefaultKnot()
			k.ID = curve.NextID()
			k.Position = pos
			k.Interpolation = ip
			i := curve.InsertKnot(k)
			c.logger.Debugw("Added knot", "id", k.ID, "index", i)
			fmt.Fprintln(cmd.OutOrStdout(), k.ID)
			return c.save(args[0], curve)
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&x, "x", 0, "x position")
	fs.Float64Var(&y, "y", 0, "y position")
	fs.StringVar(&interpolation, "interpolation", lookupcurve.Linear.String(), "interpolation: constant, linear or bezier")
	c.opts.AddOutputFlag(fs, "file to save the curve to instead of FILE")
	return cmd
}

func (c *cli) newDeleteCommand() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "delete FILE",
		Short: "Delete the knot with the given ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := c.load(args[0])
			if err != nil {
				return err
			}
			i, ok := curve.IndexOfID(id)
			if !ok {
				return fmt.Errorf("no knot with ID %d", id)
			}
			curve.DeleteKnot(i)
			return c.save(args[0], curve)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&id, "id", 0, "ID of the knot to delete")
	_ = cmd.MarkFlagRequired("id")
	c.opts.AddOutputFlag(fs, "file to save the curve to instead of FILE")
	return cmd
}
