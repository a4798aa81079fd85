package app

// SpeakingThreshold is the audio level above which a participant is
// designated the active speaker, on a 0..100 scale.
const SpeakingThreshold = 30

// Speaking reports whether one audio-level sample crosses the
// active-speaker threshold. The rule is strictly greater-than: a sample
// of exactly 30 does not count as speaking.
//
// The most recent crossing wins the designation. There is no hold time,
// smoothing, or hysteresis, so two participants hovering around the
// threshold will trade the designation on every sample. That flicker is
// a known product question, not something this layer arbitrates.
func Speaking(level int) bool {
	return level > SpeakingThreshold
}
