//go:build linux

package media

import (
	"context"
	"fmt"

	"github.com/pion/mediadevices"
	"github.com/pion/mediadevices/pkg/codec/opus"
	"github.com/pion/mediadevices/pkg/codec/vpx"
	_ "github.com/pion/mediadevices/pkg/driver/camera"
	_ "github.com/pion/mediadevices/pkg/driver/microphone"
	"github.com/pion/mediadevices/pkg/frame"
	"github.com/pion/mediadevices/pkg/prop"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

// capture opens camera and microphone via pion/mediadevices (V4L2 and
// malgo on Linux).
func capture(_ context.Context) (core.MediaStream, error) {
	vpxParams, err := vpx.NewVP8Params()
	if err != nil {
		return nil, err
	}
	vpxParams.BitRate = 1_500_000

	opusParams, err := opus.NewParams()
	if err != nil {
		return nil, err
	}

	codecSelector := mediadevices.NewCodecSelector(
		mediadevices.WithVideoEncoders(&vpxParams),
		mediadevices.WithAudioEncoders(&opusParams),
	)

	for _, d := range mediadevices.EnumerateDevices() {
		log.Debug().Str("module", "media").Str("label", d.Label).Msg("media device")
	}

	constraints := mediadevices.MediaStreamConstraints{
		Codec: codecSelector,
		Video: func(c *mediadevices.MediaTrackConstraints) {
			// Raw formats only; some cameras expose an MJPEG node that
			// produces malformed frames and poisons the VP8 encoder.
			c.FrameFormat = prop.FrameFormatOneOf{
				frame.FormatYUYV,
				frame.FormatI420,
				frame.FormatI444,
				frame.FormatRGBA,
			}
			c.Width = prop.Int(1280)
			c.Height = prop.Int(720)
		},
		Audio: func(_ *mediadevices.MediaTrackConstraints) {},
	}

	stream, err := mediadevices.GetUserMedia(constraints)
	if err != nil {
		return nil, fmt.Errorf("get user media: %w", err)
	}

	tracks := stream.GetTracks()
	for _, t := range tracks {
		t.OnEnded(func(err error) {
			if err != nil {
				log.Warn().Err(err).Str("module", "media").Msg("local track ended")
			}
		})
	}
	log.Info().Str("module", "media").Int("tracks", len(tracks)).Msg("local media captured")
	return newLocalStream(tracks), nil
}
