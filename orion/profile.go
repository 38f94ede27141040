package orion

import (
	"fmt"

	"github.com/pkg/profile"
)

type stopper interface{ Stop() }

type noProfile struct{}

func (noProfile) Stop() {}

func startProfile(mode string) (stopper, error) {
	switch mode {
	case "":
		return noProfile{}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
}
