package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/observability"
	"github.com/matzehuels/orbitcards/pkg/render"
	"github.com/matzehuels/orbitcards/pkg/render/sink"
)

// renderOpts holds the output flags shared by layout and simulate.
type renderOpts struct {
	output     string    // output file path (or base path for multiple outputs)
	formats    []string  // output formats: "svg", "pdf", "png", "json"
	avatar     string    // avatar image href embedded in SVG output
	background string    // SVG background color
	guides     bool      // draw the placement ellipses
	static     bool      // omit animation and exiting cards
	scale      float64   // PNG scale factor
	exiting    bool      // include exiting cards in JSON
	seed       uint64    // recorded in JSON output
	status     io.Writer // spinner output during conversion; nil disables it
}

func (o *renderOpts) register(cmd *cobra.Command, formats *string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: <input>.<format>, - for stdout)")
	cmd.Flags().StringVarP(formats, "format", "f", "", "output formats, comma separated: svg, json, png, pdf (default: config value)")
	cmd.Flags().StringVar(&o.avatar, "avatar", "", "avatar image href for SVG output (default: config value)")
	cmd.Flags().StringVar(&o.background, "background", "", "SVG background color")
	cmd.Flags().BoolVar(&o.guides, "guides", false, "draw the placement bands")
	cmd.Flags().BoolVar(&o.static, "static", false, "disable float animation and drop exiting cards")
	cmd.Flags().Float64Var(&o.scale, "scale", 2, "PNG scale factor")
	cmd.Flags().BoolVar(&o.exiting, "exiting", false, "include exiting cards in JSON output")
}

// resolve fills config-backed defaults and validates formats.
func (o *renderOpts) resolve(cfg config.Config, formats string) error {
	if formats == "" {
		formats = cfg.Render.Format
	}
	o.formats = parseFormats(formats)
	if err := validateFormats(o.formats); err != nil {
		return err
	}
	if o.avatar == "" {
		o.avatar = cfg.Render.Avatar
	}
	if !cfg.Render.Animate {
		o.static = true
	}
	o.seed = cfg.Cards.Seed
	if o.status == nil {
		o.status = os.Stderr
	}
	if o.output != "" && o.output != "-" {
		return errors.ValidateOutputPath(o.output)
	}
	return nil
}

// parseFormats splits a comma-separated list of formats.
func parseFormats(s string) []string {
	if s == "" {
		return []string{config.DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validFormats is the set of supported output formats.
var validFormats = func() map[string]bool {
	m := make(map[string]bool, len(config.Formats))
	for _, f := range config.Formats {
		m[f] = true
	}
	return m
}()

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(config.Formats, ", "))
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where one format is written. With a single format an
// explicit output is used as given.
func (o *renderOpts) outputPath(format, input string) string {
	if len(o.formats) == 1 && o.output != "" {
		return o.output
	}
	return basePath(o.output, input) + "." + format
}

// renderFrame renders f in a single format.
func renderFrame(ctx context.Context, f render.Frame, format string, o *renderOpts) (data []byte, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format, len(f.Cards))
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, format, time.Since(start), err) }()

	svgOpts := buildSVGOpts(o)
	switch format {
	case "svg":
		return sink.RenderSVG(f, svgOpts...), nil
	case "json":
		jsonOpts := []sink.JSONOption{sink.WithJSONSeed(o.seed)}
		if o.exiting {
			jsonOpts = append(jsonOpts, sink.WithJSONExiting())
		}
		return sink.RenderJSON(f, jsonOpts...)
	case "png":
		return sink.RenderPNG(ctx, f, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(o.scale))
	case "pdf":
		return sink.RenderPDF(ctx, f, sink.WithPDFSVGOptions(svgOpts...))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
}

func buildSVGOpts(o *renderOpts) []sink.SVGOption {
	var opts []sink.SVGOption
	if o.static {
		opts = append(opts, sink.WithStatic())
	}
	if o.avatar != "" {
		opts = append(opts, sink.WithAvatarImage(o.avatar))
	}
	if o.background != "" {
		opts = append(opts, sink.WithBackground(o.background))
	}
	if o.guides {
		opts = append(opts, sink.WithGuides())
	}
	return opts
}

// writeOutputs renders f in every requested format and returns the paths
// written. Converted formats run behind a spinner.
func writeOutputs(ctx context.Context, f render.Frame, input string, o *renderOpts) ([]string, error) {
	logger := loggerFromContext(ctx)

	var written []string
	for _, format := range o.formats {
		path := o.outputPath(format, input)

		var spinner *convertSpinner
		if (format == "png" || format == "pdf") && o.status != nil {
			spinner = startConvertSpinner(ctx, o.status, format, path)
		}
		data, err := renderFrame(ctx, f, format, o)
		if spinner != nil {
			logger.Debugf("Converted %s in %s", format, spinner.Stop().Round(time.Millisecond))
		}
		if err != nil {
			return written, err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))

		if err := writeFile(path, data); err != nil {
			return written, err
		}
		if path == "-" {
			path = "stdout"
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return out.Close()
}

// openOutput opens path for writing; "-" writes to stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
