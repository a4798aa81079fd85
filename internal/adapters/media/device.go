// Package media wraps local camera/microphone acquisition. Constraints
// are fixed: audio on, 1280x720 video. Every track obtained must be
// stopped on call end; a camera left open after the call is a
// correctness bug, not a cosmetic one.
package media

import (
	"context"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

type Device struct{}

func NewDevice() *Device { return &Device{} }

// Acquire opens the local camera and microphone. It may block on an OS
// permission prompt; ctx is the only bound on that wait.
func (d *Device) Acquire(ctx context.Context) (core.MediaStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return capture(ctx)
}
