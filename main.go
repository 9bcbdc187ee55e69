package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/display"
	"github.com/df07/go-interactive-raytracer/pkg/loaders"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
	"github.com/df07/go-interactive-raytracer/web/server"
)

// RootOptions holds the flags shared by every command that renders
type RootOptions struct {
	ConfigPath string
	SceneName  string
	SceneFile  string
	Width      int
	Height     int
	Samples    int
	Seed       int64
	ToneMapper string
}

// NewRootCommand creates the raytracer command tree
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Interactive progressive raytracer",
		Long: `A single-threaded path tracer that renders one denoised, temporally
blended frame at a time, either to the terminal or to a browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog refuses to log cleanly until the Go flag set reports parsed
			return flag.CommandLine.Parse(nil)
		},
	}

	addRootFlags(cmd.PersistentFlags(), opts)
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewScenesCommand())

	return cmd
}

func addRootFlags(flags *pflag.FlagSet, opts *RootOptions) {
	flags.StringVar(&opts.ConfigPath, "config", "", "YAML render configuration file")
	flags.StringVar(&opts.SceneName, "scene", "default", fmt.Sprintf("built-in scene %v", scene.Names()))
	flags.StringVar(&opts.SceneFile, "scene-file", "", "YAML scene file, overrides --scene")
	flags.IntVar(&opts.Width, "width", 0, "image width in pixels")
	flags.IntVar(&opts.Height, "height", 0, "image height in pixels")
	flags.IntVar(&opts.Samples, "spp", 0, "samples per pixel per frame")
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed")
	flags.StringVar(&opts.ToneMapper, "tone-mapper", "", "tone mapper (gamma|reinhard)")
}

// loadSetup resolves the scene and the render configuration. Flags the user
// set win over the config file, which wins over the defaults.
func loadSetup(opts *RootOptions, flags *pflag.FlagSet) (*scene.Scene, renderer.Config, error) {
	config := renderer.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		config, err = loaders.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, renderer.Config{}, err
		}
	}

	if flags.Changed("width") {
		config.Width = opts.Width
	}
	if flags.Changed("height") {
		config.Height = opts.Height
	}
	if flags.Changed("spp") {
		config.SamplesPerPass = opts.Samples
	}
	if flags.Changed("seed") {
		config.Seed = opts.Seed
	}
	if flags.Changed("tone-mapper") {
		config.ToneMapper = opts.ToneMapper
	}
	if err := config.Validate(); err != nil {
		return nil, renderer.Config{}, err
	}

	if opts.SceneFile != "" {
		sc, err := loaders.LoadScene(opts.SceneFile)
		if err != nil {
			return nil, renderer.Config{}, err
		}
		return sc, config, nil
	}

	sc, err := scene.New(opts.SceneName)
	if err != nil {
		return nil, renderer.Config{}, err
	}
	return sc, config, nil
}

// RenderOptions holds flags for the render command
type RenderOptions struct {
	*RootOptions
	Frames   int
	FPS      float64
	Orbit    bool
	LogEvery int
	Display  string // "auto" | "terminal" | "none"
}

// NewRenderCommand creates the render command
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render interactively in the terminal",
		Long: `Render frames continuously, drawing each one to the terminal with
24-bit color half blocks. The camera orbits the scene and then holds still
so both the editing and the settled image can be seen.

Example:
  raytracer render --scene studio --fps 15
  raytracer render --scene-file scenes/puppet.yaml --frames 100 --display none`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRender(ctx, opts, cmd.Flags())
		},
	}

	cmd.Flags().IntVar(&opts.Frames, "frames", 0, "stop after this many frames, 0 runs until interrupted")
	cmd.Flags().Float64Var(&opts.FPS, "fps", 30, "frame rate cap, 0 for none")
	cmd.Flags().BoolVar(&opts.Orbit, "orbit", true, "orbit the camera around the scene")
	cmd.Flags().IntVar(&opts.LogEvery, "log-every", 30, "log frame statistics every N frames, 0 to disable")
	cmd.Flags().StringVar(&opts.Display, "display", "auto", "where frames go (auto|terminal|none)")

	return cmd
}

func runRender(ctx context.Context, opts *RenderOptions, flags *pflag.FlagSet) error {
	sc, config, err := loadSetup(opts.RootOptions, flags)
	if err != nil {
		return err
	}

	logger := newRunLogger(renderer.NewDefaultLogger())
	rendererOpts := []renderer.Option{renderer.WithLogger(logger)}

	presenter, err := newPresenter(opts.Display)
	if err != nil {
		return err
	}
	if presenter != nil {
		rendererOpts = append(rendererOpts, renderer.WithPresenter(presenter))
	} else {
		logger.Printf("Rendering without a display\n")
	}

	r, err := renderer.NewRenderer(sc, config, rendererOpts...)
	if err != nil {
		return err
	}

	loopConfig := renderer.LoopConfig{FPS: opts.FPS, Frames: opts.Frames}
	if opts.Orbit {
		loopConfig.Path = renderer.DefaultCameraPath(r.CameraConfig())
	}

	start := time.Now()
	frames := 0
	statsChan, errChan := renderer.Loop(ctx, r, loopConfig)
	for stats := range statsChan {
		frames++
		if opts.LogEvery > 0 && stats.Frame%opts.LogEvery == 0 {
			logger.Printf("%v\n", stats)
		}
	}
	elapsed := time.Since(start)
	logger.Printf("Rendered %d frames in %v (%.1f fps)\n", frames, elapsed.Round(time.Millisecond), float64(frames)/elapsed.Seconds())

	if err := <-errChan; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newPresenter(mode string) (renderer.Presenter, error) {
	switch mode {
	case "none":
		return nil, nil
	case "terminal":
		return display.NewTerminalPresenter(os.Stdout)
	case "auto":
		presenter, err := display.NewTerminalPresenter(os.Stdout)
		if errors.Is(err, display.ErrNotTerminal) {
			return nil, nil
		}
		return presenter, err
	default:
		return nil, fmt.Errorf("invalid display %q: must be one of auto, terminal, none", mode)
	}
}

// runLogger tags every line with the run's ID
type runLogger struct {
	id   string
	base core.Logger
}

func newRunLogger(base core.Logger) *runLogger {
	return &runLogger{id: uuid.New().String(), base: base}
}

func (l *runLogger) Printf(format string, args ...interface{}) {
	l.base.Printf("[%s] "+format, append([]interface{}{l.id}, args...)...)
}

// ServeOptions holds flags for the serve command
type ServeOptions struct {
	*RootOptions
	Port      int
	FPS       float64
	StaticDir string
}

// NewServeCommand creates the serve command
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive viewer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sc, config, err := loadSetup(opts.RootOptions, cmd.Flags())
			if err != nil {
				return err
			}
			webServer, err := server.NewServer(sc, config, server.Options{
				Port:      opts.Port,
				FPS:       opts.FPS,
				StaticDir: opts.StaticDir,
			})
			if err != nil {
				return err
			}

			glog.Infof("Visit http://localhost:%d to view session %s", opts.Port, webServer.SessionID())
			return webServer.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 8080, "port to serve on")
	cmd.Flags().Float64Var(&opts.FPS, "fps", 30, "frame rate cap, 0 for none")
	cmd.Flags().StringVar(&opts.StaticDir, "static", "web/static", "directory holding the viewer page")

	return cmd
}

// NewScenesCommand creates the scenes command
func NewScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, info := range scene.ListScenes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", info.Name, info.Description)
			}
			return nil
		},
	}
}

func main() {
	flag.Set("logtostderr", "true")
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	if err := NewRootCommand().Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
