package orion

import (
	"log/slog"

	"github.com/oliverbestmann/triangle/pulse"
)

// Report logs err as the reason the program stops. It is the only
// place errors are reported, everything else returns them.
func Report(err error) {
	if err == nil {
		return
	}

	slog.Error(
		"Rendering stopped",
		slog.String("kind", pulse.Kind(err)),
		slog.String("err", err.Error()),
	)
}
