package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-picker/internal/config"
	"github.com/ironsheep/image-picker/internal/host"
	"github.com/ironsheep/image-picker/internal/logging"
	"github.com/ironsheep/image-picker/internal/picker"
	"github.com/ironsheep/image-picker/internal/server"
)

// app carries state shared by the commands.
type app struct {
	v          *viper.Viper
	configFile string
	noResize   bool
	file       string

	cfg *config.Config
	log *logging.StdLogger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "image-picker",
		Short: "Pick an image with the native file chooser and print it as a data URL",
		Long: `image-picker opens the operating system's file chooser, validates the chosen
image and prints it to stdout as a base64 data URL, cropped to a square
thumbnail unless --no-resize is given.

Environment variables:
  IMAGE_PICKER_LOG_LEVEL=debug    Enable debug logging
  IMAGE_PICKER_<SETTING>          Override any setting, e.g. IMAGE_PICKER_SIZE=128`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE:    a.runPick,
		Version: Version,
	}
	root.SetVersionTemplate("image-picker {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./image-picker.yaml or ~/.config/image-picker/image-picker.yaml)")
	flags.Int("size", picker.DefaultSize, "edge of the square thumbnail in pixels")
	flags.BoolVar(&a.noResize, "no-resize", false, "return the file in its original encoding without cropping")
	flags.StringSlice("accept", picker.DefaultAccept(), "MIME types offered by the file chooser")
	flags.Float64("max-size-mb", picker.DefaultMaxFileSizeMB, "largest accepted file in megabytes")
	flags.String("anchor", "top-left", "crop anchor: top-left or center")
	flags.String("filter", "linear", "resampling filter: nearest, linear, catmullrom or lanczos")
	flags.Duration("timeout", 0, "give up if no image is chosen within this duration (0 waits forever)")
	flags.String("title", "Choose an image", "file chooser title")
	flags.String("log-level", "info", "log level: info or debug")

	bindings := map[string]string{
		config.KeySize:          "size",
		config.KeyAccept:        "accept",
		config.KeyMaxFileSizeMB: "max-size-mb",
		config.KeyAnchor:        "anchor",
		config.KeyFilter:        "filter",
		config.KeyTimeout:       "timeout",
		config.KeyTitle:         "title",
		config.KeyLogLevel:      "log-level",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	pick := &cobra.Command{
		Use:   "pick",
		Short: "Pick an image and print its data URL (default command)",
		RunE:  a.runPick,
	}
	pick.Flags().StringVar(&a.file, "file", "", "use this file instead of showing the chooser")
	root.Flags().AddFlagSet(pick.Flags())

	root.AddCommand(pick, newServeCmd(a), newVersionCmd())
	return root
}

// load resolves configuration and sets up logging.
func (a *app) load() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if a.noResize {
		cfg.Size = picker.NoResize
	}
	a.cfg = cfg
	a.log = logging.New(os.Stderr, cfg.Debug())
	a.log.Debugf("Image picker v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	return nil
}

// dialog returns the file-selection surface for this run.
func (a *app) dialog() host.Dialog {
	if a.file != "" {
		return host.PathDialog{Paths: []string{a.file}}
	}
	return host.NativeDialog{Title: a.cfg.Title}
}

// signalContext is canceled on SIGINT/SIGTERM and after the configured timeout.
func (a *app) signalContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if a.cfg.Timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func (a *app) runPick(cmd *cobra.Command, args []string) error {
	ctx, cancel := a.signalContext()
	defer cancel()

	p := picker.New(a.dialog(), picker.WithLogger(a.log))
	defer p.Close()

	dataURL, err := p.Pick(ctx, a.cfg.Request())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "image-picker: %v\n", err)
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), dataURL)
	return err
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the picker as MCP tools over stdin/stdout",
		Long: `serve runs an MCP (Model Context Protocol) server on stdin/stdout.
Configure it in your MCP client; logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p := picker.New(host.NativeDialog{Title: a.cfg.Title}, picker.WithLogger(a.log))
			defer p.Close()

			srv := server.New(p, a.cfg.Request(), a.log)
			if err := srv.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				a.log.Printf("Server error: %v", err)
				return err
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-picker %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
