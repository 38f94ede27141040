package pulse

import "errors"

// Every failure is classified into exactly one of these kinds. Call sites wrap
// the kind together with the underlying cause, so errors.Is works on both.
var (
	// ErrCapabilityAbsent is returned when the host offers no graphics capability at all.
	ErrCapabilityAbsent = errors.New("graphics capability absent")

	// ErrNegotiation is returned if the adapter or device request was rejected.
	ErrNegotiation = errors.New("adapter/device negotiation failed")

	// ErrResourceCreation is returned if the device rejects the creation of a
	// GPU object, or a write into a buffer it owns.
	ErrResourceCreation = errors.New("resource creation failed")

	// ErrFrameAcquisition is returned if no presentable image could be acquired
	// for the current frame. The frame is dropped.
	ErrFrameAcquisition = errors.New("frame acquisition failed")
)

// Kind returns a short name of the error class of err, or "unknown"
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrCapabilityAbsent):
		return "capability-absent"
	case errors.Is(err, ErrNegotiation):
		return "negotiation"
	case errors.Is(err, ErrResourceCreation):
		return "resource-creation"
	case errors.Is(err, ErrFrameAcquisition):
		return "frame-acquisition"
	default:
		return "unknown"
	}
}
