package cmd

import (
	"github.com/fsnotify/fsnotify"
	"github.com/gekko3d/nucleus/config"
	"github.com/gekko3d/nucleus/logging"
	"github.com/gekko3d/nucleus/rt/core"
	"github.com/spf13/viper"
)

// watchConfig applies scene knob edits from the config file while the
// window is open. Geometry and window keys need a restart.
func (c *cli) watchConfig(scene *core.Scene) {
	if c.v.ConfigFileUsed() == "" {
		c.logger.Warnf("--watch given but no config file is in use")
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		applyLiveConfig(c.v, scene, c.logger, e)
	})
	c.v.WatchConfig()
	c.logger.Infof("watching %s for changes", c.v.ConfigFileUsed())
}

// applyLiveConfig runs on viper's watcher goroutine. Scene setters are
// atomic, so the render loop picks the values up on its next tick.
func applyLiveConfig(v *viper.Viper, scene *core.Scene, logger logging.Logger, e fsnotify.Event) {
	logger.Debugf("config event %s on %s", e.Op, e.Name)

	cfg, err := config.Load(v)
	if err != nil {
		logger.Warnf("ignoring config change: %v", err)
		return
	}
	scene.SetAutoRotate(cfg.Scene.AutoRotate)
	scene.SetPointScale(cfg.Scene.PointScale)
	logger.Infof("config reloaded: autoRotate=%v pointScale=%.3f", cfg.Scene.AutoRotate, cfg.Scene.PointScale)
}
