package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/scene"
)

// simulateOpts holds the flags specific to the simulate command.
type simulateOpts struct {
	script  string // script file, "-" for stdin
	jsonOut bool   // print results as JSON instead of a table
	render  bool   // write the final scene
}

// simulateCommand creates the simulate command for replaying scripted sessions.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		sopts   sceneOpts
		ropts   renderOpts
		opts    simulateOpts
		formats string
	)

	cmd := &cobra.Command{
		Use:   "simulate <posts.json> [event...]",
		Short: "Replay a scripted scroll/resize/click session",
		Long: `Replay a scripted scroll/resize/click session against the scene.

Events are given as arguments or read from --script, one or more per line:

  scroll@100ms          scroll at 100ms after load
  resize:1024x768@1s    resize the viewport at 1s
  click:2@1.5s          click the third card on screen

Offsets are measured from load and must not decrease; an omitted offset
repeats the previous one. Scroll and resize events go through the same
throttles as a live page, so events inside a throttle window are dropped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sopts.posts = args[0]
			cfg, err := c.loadConfig(cmd, &sopts)
			if err != nil {
				return err
			}
			events, err := readEvents(cmd.InOrStdin(), opts.script, args[1:])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") || cmd.Flags().Changed("format") {
				opts.render = true
				if err := ropts.resolve(cfg, formats); err != nil {
					return err
				}
			}
			return c.runSimulate(cmd.Context(), cmd.OutOrStdout(), cfg, sopts.posts, events, opts, &ropts)
		},
	}

	sopts.register(cmd)
	ropts.register(cmd, &formats)
	cmd.Flags().StringVar(&opts.script, "script", "", "read events from a script file (- for stdin)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print results and the final scene as JSON")

	return cmd
}

// readEvents parses events from the script file and the argument tokens,
// script first.
func readEvents(stdin io.Reader, script string, tokens []string) ([]scene.Event, error) {
	var src []io.Reader
	switch script {
	case "":
	case "-":
		src = append(src, stdin)
	default:
		f, err := os.Open(script)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open script %s", script)
		}
		defer f.Close()
		src = append(src, f)
	}
	if len(tokens) > 0 {
		src = append(src, strings.NewReader("\n"+strings.Join(tokens, " ")))
	}
	if len(src) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidEvent, "no events given")
	}
	return scene.ParseScript(io.MultiReader(src...))
}

// simulateOutput is the JSON form of a simulation run.
type simulateOutput struct {
	Results []scene.Result `json:"results"`
	Scene   scene.Snapshot `json:"scene"`
}

// runSimulate loads the scene, replays events and reports the outcome.
func (c *CLI) runSimulate(ctx context.Context, w io.Writer, cfg config.Config, input string, events []scene.Event, opts simulateOpts, o *renderOpts) error {
	prog := newProgress(c.Logger)

	list, err := c.loadPosts(input)
	if err != nil {
		return err
	}

	clock := scene.NewSimClock(time.Now())
	ctrl, stage := c.newScene(cfg, scene.WithClock(clock.Now))
	if _, err := loadScene(ctx, ctrl, cfg, list); err != nil {
		return err
	}

	results, err := scene.Replay(ctx, ctrl, clock, events)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Replayed %d events", len(results)))

	if opts.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(simulateOutput{Results: results, Scene: ctrl.Snapshot()}); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode results")
		}
	} else {
		fmt.Fprintln(w, resultsTable(results))
		scroll, resize := ctrl.ThrottleStats()
		fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  scroll %d/%d accepted · resize %d/%d accepted",
			scroll.Accepted, scroll.Accepted+scroll.Dropped,
			resize.Accepted, resize.Accepted+resize.Dropped)))
	}

	if !opts.render {
		return nil
	}
	written, err := writeOutputs(ctx, stage.Frame(), input, o)
	if err != nil {
		return err
	}
	for _, path := range written {
		c.Logger.Infof("Generated %s", path)
	}
	return nil
}

// resultsTable renders replay results as a table.
func resultsTable(results []scene.Result) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(results))
	for i, r := range results {
		status := iconSuccess
		if !r.Accepted {
			status = "dropped"
			if r.Err != "" {
				status = iconError
			}
		}
		rows[i] = []string{fmt.Sprint(i + 1), r.Event.At.String(), eventLabel(r.Event), status, resultDetail(r)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "At", "Event", "", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(results) {
				return lipgloss.NewStyle()
			}
			r := results[row]
			switch {
			case col == 3 && r.Err != "":
				return styleIconError
			case col == 3 && r.Accepted:
				return styleIconSuccess
			case !r.Accepted:
				return StyleDim
			case col == 4 && r.Link != "":
				return StyleLink
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func eventLabel(ev scene.Event) string {
	s := ev.String()
	if i := strings.LastIndex(s, "@"); i >= 0 {
		return s[:i]
	}
	return s
}

func resultDetail(r scene.Result) string {
	switch {
	case r.Err != "":
		return r.Err
	case r.Link != "":
		return r.Link
	case r.Card != "":
		return "added " + r.Card
	}
	return ""
}
