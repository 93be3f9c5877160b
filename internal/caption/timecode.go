package caption

// Interpolate rescales an input timecode to a target frame rate and scale
// fraction, choosing the output's drop-frame flag from the target rate
// (not the input's), and nudging the frame number forward out of any
// dropped slot. It returns (Timecode{}, false) when tc is nil or carries
// no frame rate: a missing input timecode never synthesises an output
// timecode from the rate alone.
func Interpolate(tc *Timecode, outFpsN, outFpsD uint32, scaleN, scaleD uint32) (Timecode, bool) {
	if tc == nil || tc.FpsN == 0 {
		return Timecode{}, false
	}

	outFrame := tc.Frames
	if scaleD != 0 {
		outFrame = int((int64(tc.Frames) * int64(scaleN)) / int64(scaleD))
	}

	dropFrame := FpsEntry{FpsN: outFpsN, FpsD: outFpsD}.IsDropFrame()

	out := Timecode{
		FpsN:       outFpsN,
		FpsD:       outFpsD,
		DropFrame:  dropFrame,
		Hours:      tc.Hours,
		Minutes:    tc.Minutes,
		Seconds:    tc.Seconds,
		Frames:     outFrame,
		FieldCount: tc.FieldCount,
	}

	if dropFrame {
		for attempt := 0; attempt < 10 && isDroppedSlot(out); attempt++ {
			out.Frames++
			normalizeFrames(&out, outFpsN, outFpsD)
		}
	}

	return out, true
}

// nominalFPS returns the rounded integer frame count per second for a
// fractional rate (e.g. 30000/1001 -> 30, 24000/1001 -> 24), used to
// detect frame-number rollover and dropped slots.
func nominalFPS(fpsN, fpsD uint32) int {
	if fpsD == 0 {
		return 0
	}
	return int((uint64(fpsN) + uint64(fpsD)/2) / uint64(fpsD))
}

// isDroppedSlot reports whether tc names a frame number that drop-frame
// timecode skips: frame 0 or 1 of a minute that is not a multiple of 10,
// with seconds == 0.
func isDroppedSlot(tc Timecode) bool {
	if !tc.DropFrame {
		return false
	}
	if tc.Seconds != 0 {
		return false
	}
	if tc.Minutes%10 == 0 {
		return false
	}
	return tc.Frames == 0 || tc.Frames == 1
}

// normalizeFrames carries a frame-number overflow into seconds/minutes/
// hours for the given nominal rate.
func normalizeFrames(tc *Timecode, fpsN, fpsD uint32) {
	fps := nominalFPS(fpsN, fpsD)
	if fps <= 0 {
		return
	}
	for tc.Frames >= fps {
		tc.Frames -= fps
		tc.Seconds++
		if tc.Seconds >= 60 {
			tc.Seconds = 0
			tc.Minutes++
			if tc.Minutes >= 60 {
				tc.Minutes = 0
				tc.Hours++
				if tc.Hours >= 24 {
					tc.Hours = 0
				}
			}
		}
	}
}

// Advance increments tc by one frame, applying drop-frame arithmetic
// (skipping frames 0 and 1 at the start of every minute except every
// tenth) when tc.DropFrame is set.
func Advance(tc *Timecode) {
	if tc == nil {
		return
	}
	tc.Frames++
	normalizeFrames(tc, tc.FpsN, tc.FpsD)
	if tc.DropFrame && tc.Frames == 0 && tc.Seconds == 0 && tc.Minutes%10 != 0 {
		tc.Frames = 2
	}
}
