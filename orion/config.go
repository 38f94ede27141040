package orion

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/triangle"
	"gopkg.in/yaml.v3"
)

// RunOptions configure the window and the renderer. Zero values are
// replaced with defaults when running.
type RunOptions struct {
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	WindowTitle  string `yaml:"window_title"`

	// "static" or "rotating"
	Variant string `yaml:"variant"`

	// radians per millisecond
	AngularVelocity float64 `yaml:"angular_velocity"`

	// red, green, blue and alpha in 0..1
	ClearColor []float64 `yaml:"clear_color"`

	// debug, info, warn or error
	LogLevel string `yaml:"log_level"`

	// empty, "cpu" or "mem"
	Profile string `yaml:"profile"`
}

func (opts RunOptions) WithDefaults() RunOptions {
	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1000
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 600
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Triangle"
	}

	if opts.Variant == "" {
		opts.Variant = triangle.VariantRotating.String()
	}

	if opts.AngularVelocity == 0 {
		opts.AngularVelocity = triangle.AngularVelocity
	}

	if opts.LogLevel == "" {
		opts.LogLevel = "info"
	}

	return opts
}

// LoadConfig reads options from a yaml file. Fields missing in the
// file stay at their zero value.
func LoadConfig(path string) (RunOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunOptions{}, fmt.Errorf("read config: %w", err)
	}

	var opts RunOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return RunOptions{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	return opts, nil
}

// ApplyEnv overrides options with values from the environment.
func (opts *RunOptions) ApplyEnv(getenv func(string) string) {
	if level := getenv("TRIANGLE_LOG_LEVEL"); level != "" {
		opts.LogLevel = level
	}
}

func (opts RunOptions) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}

func (opts RunOptions) rendererOptions() (triangle.Options, error) {
	variant, err := triangle.ParseVariant(opts.Variant)
	if err != nil {
		return triangle.Options{}, err
	}

	rendererOpts := triangle.Options{
		Variant:         variant,
		AngularVelocity: opts.AngularVelocity,
	}

	switch len(opts.ClearColor) {
	case 0:
	case 4:
		rendererOpts.ClearColor = &wgpu.Color{
			R: opts.ClearColor[0],
			G: opts.ClearColor[1],
			B: opts.ClearColor[2],
			A: opts.ClearColor[3],
		}
	default:
		return triangle.Options{}, fmt.Errorf("clear color needs 4 components, got %d", len(opts.ClearColor))
	}

	return rendererOpts, nil
}
