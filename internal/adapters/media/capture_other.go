//go:build !linux

package media

import (
	"context"
	"errors"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

// Camera/mic capture via pion/mediadevices requires platform drivers
// (V4L2/malgo on Linux); other platforms are not wired yet.
func capture(_ context.Context) (core.MediaStream, error) {
	return nil, errors.New("media capture not supported on this platform")
}
