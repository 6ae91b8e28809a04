package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gekko3d/nucleus/config"
	"github.com/gekko3d/nucleus/logging"
	"github.com/gekko3d/nucleus/rt/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X github.com/gekko3d/nucleus/cmd.Version=...".
var Version = "dev"

// cli carries what PersistentPreRunE resolved to the subcommands.
type cli struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *logging.ZapLogger
}

func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "nucleus",
		Short:         "Interactive particle sphere rendered with WebGPU.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initialize()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer c.logger.Sync()
			scene := c.newScene()
			if c.cfg.Watch {
				c.watchConfig(scene)
			}
			return runWindow(cmd.Context(), c.cfg, scene, c.logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ./nucleus.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("debug", false, "show the debug overlay at startup")

	local := rootCmd.Flags()
	local.Int("width", 1280, "window width in screen coordinates")
	local.Int("height", 720, "window height in screen coordinates")
	local.Float32("point-scale", core.DefaultPointScale, "point size multiplier")
	local.Bool("auto-rotate", true, "slowly rotate the sphere")
	local.Int64("seed", 1, "random seed for the point cloud")
	local.Bool("watch", false, "apply auto_rotate and point_scale edits from the config file live")

	bindFlags(c.v, rootCmd, map[string]string{
		"logger.level":      "log-level",
		"debug":             "debug",
		"window.width":      "width",
		"window.height":     "height",
		"scene.point_scale": "point-scale",
		"scene.auto_rotate": "auto-rotate",
		"scene.seed":        "seed",
		"watch":             "watch",
	})

	rootCmd.AddCommand(newStatsCmd(c))
	return rootCmd
}

// bindFlags binds each viper key to a flag. Unset flags do not shadow the
// config file or env; viper only uses a bound flag once it changed.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag == nil {
			panic(fmt.Sprintf("no flag %q for key %q", name, key))
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic(err)
		}
	}
}

func (c *cli) initialize() error {
	if err := initializeConfig(c.v, c.cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		return err
	}
	c.logger = logger
	if f := c.v.ConfigFileUsed(); f != "" {
		c.logger.Infof("using config file %s", f)
	}
	return nil
}

func initializeConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("nucleus")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(config.EnvKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func (c *cli) newScene() *core.Scene {
	geometry := core.NewSphereCache(c.cfg.SphereParams(), c.cfg.Scene.Seed).Get()
	return core.NewScene(core.Options{
		AutoRotate: c.cfg.Scene.AutoRotate,
		PointScale: c.cfg.Scene.PointScale,
		Geometry:   geometry,
		Logger:     c.logger.Named("scene"),
	})
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "nucleus:", err)
		stop()
		os.Exit(1)
	}
}
