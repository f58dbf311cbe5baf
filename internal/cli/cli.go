// Package cli implements the orbitcards command-line interface.
//
// This package provides commands for laying out floating post cards around
// an avatar, replaying scripted scroll/resize/click sessions, previewing
// the scene interactively in the terminal, and inspecting post sources.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Place cards and write SVG, JSON, PNG or PDF
//   - simulate: Replay a scripted event session against the real throttles
//   - preview: Interactive terminal preview (resize, scroll, click)
//   - posts: List the posts a source provides
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers log-backed observability hooks. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitcards/pkg/buildinfo"
	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/observability"
	"github.com/matzehuels/orbitcards/pkg/posts"
	"github.com/matzehuels/orbitcards/pkg/render"
	"github.com/matzehuels/orbitcards/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "orbitcards"

	// defaultPostsFile is read when no post source is given.
	defaultPostsFile = "posts.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Orbitcards scatters post cards around an avatar",
		Long:         `Orbitcards lays out floating post cards on two elliptical bands around a central avatar, avoiding overlaps, and renders the scene as SVG, JSON, PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
				c.registerHooks()
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/orbitcards/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.postsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) registerHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPlacementHooks(h)
	observability.SetSceneHooks(h)
	observability.SetRenderHooks(h)
}

// =============================================================================
// Config & Scene Setup
// =============================================================================

// sceneOpts holds the flags shared by every command that builds a scene.
// They override the config file when set.
type sceneOpts struct {
	posts    string
	width    float64
	height   float64
	seed     uint64
	maxCards int
	origin   string
	scaled   bool
}

func (o *sceneOpts) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.width, "width", config.DefaultWidth, "viewport width")
	cmd.Flags().Float64Var(&o.height, "height", config.DefaultHeight, "viewport height")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed (default: config value, or time-based)")
	cmd.Flags().IntVar(&o.maxCards, "max-cards", config.DefaultMaxCards, "maximum number of cards on screen")
	cmd.Flags().StringVar(&o.origin, "origin", "", "site origin card links resolve against")
	cmd.Flags().BoolVar(&o.scaled, "validate-scaled", false, "validate positions at the scaled card size")
}

// loadConfig resolves the config file and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command, o *sceneOpts) (config.Config, error) {
	cfg, path, err := config.Resolve(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Render.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Render.Height = o.height
	}
	if flags.Changed("seed") {
		cfg.Cards.Seed = o.seed
	}
	if flags.Changed("max-cards") {
		cfg.Cards.MaxCards = o.maxCards
	}
	if flags.Changed("origin") {
		cfg.Cards.Origin = o.origin
	}
	if flags.Changed("validate-scaled") {
		cfg.Placement.ValidateAtScaledSize = o.scaled
	}
	if cfg.Cards.Seed == 0 {
		cfg.Cards.Seed = uint64(time.Now().UnixNano())
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadPosts reads the post source. A missing source is not fatal: it is
// logged and nil is returned so the scene renders avatar-only.
func (c *CLI) loadPosts(path string) ([]posts.Post, error) {
	if path == "" {
		path = defaultPostsFile
	}
	list, err := posts.Load(path)
	if errors.Is(err, errors.ErrCodeDataSourceAbsent) {
		c.Logger.Error("post source unavailable, rendering avatar only", "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded posts", "path", path, "count", len(list))
	return list, nil
}

// newScene builds a controller rendering into a fresh stage.
func (c *CLI) newScene(cfg config.Config, opts ...scene.Option) (*scene.Controller, *render.Stage) {
	stage := render.NewStage(cfg.Cards.Seed,
		render.WithOrigin(cfg.Cards.Origin),
		render.WithExitDelay(cfg.Render.ExitDelay.Duration),
	)
	opts = append([]scene.Option{scene.WithPresenter(stage), scene.WithLogger(c.Logger)}, opts...)
	return scene.New(cfg, opts...), stage
}

// loadScene runs Load and treats an absent post source as a warning.
func loadScene(ctx context.Context, ctrl *scene.Controller, cfg config.Config, list []posts.Post) (int, error) {
	n, err := ctrl.Load(ctx, cfg.Render.Width, cfg.Render.Height, list)
	if errors.Is(err, errors.ErrCodeDataSourceAbsent) {
		return 0, nil
	}
	return n, err
}
