package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/scene"
)

// layoutCommand creates the layout command for placing cards and writing the scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		sopts   sceneOpts
		ropts   renderOpts
		formats string
		scrolls int
	)

	cmd := &cobra.Command{
		Use:   "layout [posts.json]",
		Short: "Place post cards around the avatar and render the scene",
		Long: `Place post cards around the avatar and render the scene.

The layout command reads a post list (JSON, YAML or TOML), loads the scene at
the given viewport size and writes it as SVG, JSON, PNG or PDF. Use --scrolls
to add cards as if the page had been scrolled that many times; older cards
are evicted once the on-screen cap is reached.

PNG and PDF output require rsvg-convert.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				sopts.posts = args[0]
			}
			cfg, err := c.loadConfig(cmd, &sopts)
			if err != nil {
				return err
			}
			if err := ropts.resolve(cfg, formats); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cfg, sopts.posts, scrolls, &ropts)
		},
	}

	sopts.register(cmd)
	ropts.register(cmd, &formats)
	cmd.Flags().IntVar(&scrolls, "scrolls", 0, "number of scroll events to apply after loading")

	return cmd
}

// runLayout loads the scene, applies scrolls and writes every format.
func (c *CLI) runLayout(ctx context.Context, cfg config.Config, input string, scrolls int, o *renderOpts) error {
	prog := newProgress(c.Logger)

	list, err := c.loadPosts(input)
	if err != nil {
		return err
	}

	// Scrolls are spaced one throttle window apart on a simulated clock so
	// every one of them is accepted.
	clock := scene.NewSimClock(time.Now())
	ctrl, stage := c.newScene(cfg, scene.WithClock(clock.Now))
	n, err := loadScene(ctx, ctrl, cfg, list)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Placed %d of %d initial cards", n, min(len(list), cfg.Cards.MaxCards))

	for i := 1; i <= scrolls; i++ {
		clock.Set(time.Duration(i) * cfg.Throttle.Scroll.Duration)
		if _, ok := ctrl.Scroll(ctx); !ok {
			c.Logger.Debug("scroll dropped", "n", i)
		}
	}

	written, err := writeOutputs(ctx, stage.Frame(), input, o)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d cards", len(ctrl.Cards())))

	if o.output == "-" {
		return nil
	}
	printSuccess("Scene rendered")
	for _, path := range written {
		printFile(path)
	}
	printStats(len(ctrl.Cards()), len(list), ctrl.Cursor())
	return nil
}
