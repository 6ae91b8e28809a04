package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gekko3d/nucleus/logging"
	"github.com/gekko3d/nucleus/rt/core"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// EnvKeyReplacer maps nested keys to env names: scene.point_scale is
// NUCLEUS_SCENE_POINT_SCALE.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

const EnvPrefix = "NUCLEUS"

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type SceneConfig struct {
	AutoRotate         bool    `mapstructure:"auto_rotate"`
	PointScale         float32 `mapstructure:"point_scale"`
	Seed               int64   `mapstructure:"seed"`
	OuterCount         int     `mapstructure:"outer_count"`
	InnerCount         int     `mapstructure:"inner_count"`
	Radius             float32 `mapstructure:"radius"`
	InnerDensityFactor float32 `mapstructure:"inner_density_factor"`
}

type CameraConfig struct {
	Fov         float32 `mapstructure:"fov"`
	Distance    float32 `mapstructure:"distance"`
	Damping     float32 `mapstructure:"damping"`
	RotateSpeed float32 `mapstructure:"rotate_speed"`
	ZoomSpeed   float32 `mapstructure:"zoom_speed"`
}

type Config struct {
	Window WindowConfig   `mapstructure:"window"`
	Scene  SceneConfig    `mapstructure:"scene"`
	Camera CameraConfig   `mapstructure:"camera"`
	Logger logging.Config `mapstructure:"logger"`
	Debug  bool           `mapstructure:"debug"`
	Watch  bool           `mapstructure:"watch"`
}

// SetDefaults registers every key, so env vars and AutomaticEnv resolve
// them even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Nucleus")

	v.SetDefault("scene.auto_rotate", true)
	v.SetDefault("scene.point_scale", core.DefaultPointScale)
	v.SetDefault("scene.seed", 1)
	v.SetDefault("scene.outer_count", core.DefaultOuterCount)
	v.SetDefault("scene.inner_count", core.DefaultInnerCount)
	v.SetDefault("scene.radius", core.DefaultRadius)
	v.SetDefault("scene.inner_density_factor", core.DefaultInnerDensityFactor)

	cam := core.NewCameraState()
	v.SetDefault("camera.fov", cam.FovY)
	v.SetDefault("camera.distance", cam.Distance)
	v.SetDefault("camera.damping", cam.Damping)
	v.SetDefault("camera.rotate_speed", cam.RotateSpeed)
	v.SetDefault("camera.zoom_speed", cam.ZoomSpeed)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "nucleus")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("debug", false)
	v.SetDefault("watch", false)
}

func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load unmarshals and validates whatever v has resolved.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Scene.OuterCount < 0 || c.Scene.InnerCount < 0:
		return fmt.Errorf("%w: scene point counts must not be negative", ErrInvalidConfig)
	case c.Scene.Radius <= 0:
		return fmt.Errorf("%w: scene.radius must be positive", ErrInvalidConfig)
	case c.Scene.InnerDensityFactor < 0 || c.Scene.InnerDensityFactor > 1:
		return fmt.Errorf("%w: scene.inner_density_factor must be in [0,1]", ErrInvalidConfig)
	case c.Scene.PointScale <= 0:
		return fmt.Errorf("%w: scene.point_scale must be positive", ErrInvalidConfig)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("%w: camera.fov must be in (0,180)", ErrInvalidConfig)
	case c.Camera.Damping < 0 || c.Camera.Damping >= 1:
		return fmt.Errorf("%w: camera.damping must be in [0,1)", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) SphereParams() core.SphereParams {
	return core.SphereParams{
		OuterCount:         c.Scene.OuterCount,
		InnerCount:         c.Scene.InnerCount,
		Radius:             c.Scene.Radius,
		InnerDensityFactor: c.Scene.InnerDensityFactor,
	}
}

// NewCamera applies the camera section to a default orbit camera. The
// distance is clamped into the camera's zoom range.
func (c *Config) NewCamera() *core.CameraState {
	cam := core.NewCameraState()
	cam.FovY = c.Camera.Fov
	cam.Damping = c.Camera.Damping
	cam.RotateSpeed = c.Camera.RotateSpeed
	cam.ZoomSpeed = c.Camera.ZoomSpeed
	cam.Distance = c.Camera.Distance
	cam.Zoom(0)
	return cam
}
