package orion

import (
	"context"
	"errors"
	"fmt"

	"github.com/oliverbestmann/triangle/glimpse"
	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/triangle/shaders"
	"github.com/oliverbestmann/triangle/triangle"
)

// Run opens a window and renders the triangle until the window is closed
// or ctx is cancelled. Both are not considered an error.
func Run(ctx context.Context, opts RunOptions) error {
	opts = opts.WithDefaults()

	rendererOpts, err := opts.rendererOptions()
	if err != nil {
		return err
	}

	prof, err := startProfile(opts.Profile)
	if err != nil {
		return err
	}

	defer prof.Stop()

	// create a new window
	win, err := glimpse.NewWindow(
		opts.WindowWidth,
		opts.WindowHeight,
		opts.WindowTitle,
	)
	if err != nil {
		return fmt.Errorf("create window: %w: %w", pulse.ErrCapabilityAbsent, err)
	}

	defer win.Terminate()

	// initialize the webgpu device
	dev, err := pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer dev.Release()

	// the window can not be resized, configure the view once
	width, height := win.GetSize()

	view := pulse.NewView(dev)
	if err := view.Configure(width, height); err != nil {
		return fmt.Errorf("configure view: %w", err)
	}

	rendererOpts.ColorFormat = view.Format()
	rendererOpts.Width = width
	rendererOpts.Height = height
	rendererOpts.Shaders = shaders.NewLibrary()

	renderer, err := triangle.NewRenderer(dev, view, rendererOpts)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	defer renderer.Release()

	err = renderer.Run(ctx, NewStatsTicker(win.Ticker()))
	if isShutdown(err) {
		return nil
	}

	return err
}

func isShutdown(err error) bool {
	return errors.Is(err, glimpse.ErrClosed) ||
		errors.Is(err, context.Canceled)
}
