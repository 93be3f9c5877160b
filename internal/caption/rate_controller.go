package caption

import (
	"errors"
	"log/slog"
)

// errInternalInvariant signals a condition the control logic considers
// unreachable in correct operation. Fatal — callers should abort the
// stream rather than continue with corrupted counters.
var errInternalInvariant = errors.New("caption: internal invariant violated")

// maxDrainIterations bounds the end-of-stream drain loop. The loop is
// expected to terminate within one rate-conversion cycle (bounded by
// lcm(q*r, p*s)/(p*s) for rational rates p/q -> r/s); this cap exists
// only to turn a latent counter bug into a reported error instead of a
// hang.
const maxDrainIterations = 100000

// RateController decides, per input, whether to emit an output cc_data
// block, hold input in scratch, split an oversized payload, or reset the
// virtual clock. It is stateless; all mutable state lives in the
// ConverterState passed to Step.
type RateController struct {
	log *slog.Logger
}

// NewRateController returns a RateController that logs
// OutputCapacityExceeded warnings to log.
func NewRateController(log *slog.Logger) *RateController {
	if log == nil {
		log = slog.Default()
	}
	return &RateController{log: log}
}

// StepResult is the per-input outcome of RateController.Step.
type StepResult struct {
	Emitted  bool
	Triplets []Triplet
	Timecode *Timecode
}

// Step runs one real input through the rate-conversion decision.
// triplets should already be compacted (see Compact). tc is the input
// payload's timecode, or nil if none was supplied. Every call represents
// one input-frame time advancing, so InputFrames advances
// unconditionally before the virtual clock is compared.
func (rc *RateController) Step(state *ConverterState, triplets []Triplet, tc *Timecode) (StepResult, error) {
	state.InputFrames++
	return rc.advance(state, triplets, tc)
}

// Poll emits one more output frame owed against already-received input,
// without advancing the input virtual clock — the counterpart to Step
// for the mid-stream upsampling case: when the output rate exceeds the
// input rate, a single Step may leave
// more than one output frame's worth of time already owed. Callers
// should loop Poll (guarded by CanGenerateOutput) after every Step to
// drain that backlog without waiting for more input to arrive. It
// returns StepResult{} when no output is currently owed.
func (rc *RateController) Poll(state *ConverterState, tc *Timecode) (StepResult, error) {
	if !rc.CanGenerateOutput(state) {
		return StepResult{}, nil
	}
	return rc.advance(state, nil, tc)
}

// advance applies the hold/emit/split/reset decision to the current
// counters and scratch, without itself touching
// InputFrames: Step advances the input clock before calling this; Poll
// and Drain's synthetic ticks choose whether to advance it at all.
func (rc *RateController) advance(state *ConverterState, triplets []Triplet, tc *Timecode) (StepResult, error) {
	combined := append(append([]Triplet{}, state.Scratch...), triplets...)

	inFps, outFps := state.InFps, state.OutFps

	// Unknown rate or equivalent rates: 1:1 passthrough, no scratch.
	if inFps.IsZero() || outFps.IsZero() || ratesEquivalent(inFps, outFps) {
		state.Scratch = nil
		state.ScratchLen = 0
		state.OutputFrames++
		outTC, ok := Interpolate(tc, outFps.FpsN, outFps.FpsD, 1, 1)
		return StepResult{Emitted: true, Triplets: combined, Timecode: optTC(outTC, ok)}, nil
	}

	scaleN := uint64(inFps.FpsD) * uint64(outFps.FpsN)
	scaleD := uint64(inFps.FpsN) * uint64(outFps.FpsD)
	if scaleD == 0 {
		return StepResult{}, errInternalInvariant
	}

	// input_clock = (in_fps_d/in_fps_n) * input_frames
	// output_clock = (out_fps_d/out_fps_n) * (output_frames+1)
	// Compared via cross-multiplication to stay in integer arithmetic:
	//   input_clock  = input_frames  * in_fps_d  / in_fps_n
	//   output_clock = (output_frames+1) * out_fps_d / out_fps_n
	// input_clock CMP output_clock
	//   <=> input_frames*in_fps_d*out_fps_n CMP (output_frames+1)*out_fps_d*in_fps_n
	lhs := state.InputFrames * int64(inFps.FpsD) * int64(outFps.FpsN)
	rhs := (state.OutputFrames + 1) * int64(outFps.FpsD) * int64(inFps.FpsN)

	switch {
	case lhs == rhs:
		// Cycle boundary.
		state.Scratch = nil
		state.ScratchLen = 0
		state.InputFrames = 0
		state.OutputFrames = 0
		outTC, ok := interpolateScaled(tc, outFps, scaleN, scaleD)
		return StepResult{Emitted: true, Triplets: combined, Timecode: optTC(outTC, ok)}, nil

	case lhs < rhs:
		// Next output frame lies in the future: hold.
		state.Scratch = combined
		state.ScratchLen = len(combined)
		return StepResult{Emitted: false}, nil

	default: // lhs > rhs
		maxOut := int(outFps.MaxCCCount)
		emit := combined
		if len(combined) > maxOut {
			rc.log.Warn("rate-converted cc_data block exceeds output budget, carrying tail to scratch",
				"count", len(combined), "max", maxOut)
			state.Scratch = append([]Triplet{}, combined[maxOut:]...)
			state.ScratchLen = len(state.Scratch)
			emit = combined[:maxOut]
		} else {
			state.Scratch = nil
			state.ScratchLen = 0
		}
		state.OutputFrames++
		outTC, ok := interpolateScaled(tc, outFps, scaleN, scaleD)
		return StepResult{Emitted: true, Triplets: emit, Timecode: optTC(outTC, ok)}, nil
	}
}

// interpolateScaled adapts Interpolate's (scaleN, scaleD uint32) signature
// to the 64-bit scale fraction Step computes.
func interpolateScaled(tc *Timecode, outFps FpsEntry, scaleN, scaleD uint64) (Timecode, bool) {
	// scaleN/scaleD both derive from FPS-table values well within uint32
	// range for any legal table entry; truncation here would indicate a
	// table entry outside the documented rates.
	return Interpolate(tc, outFps.FpsN, outFps.FpsD, uint32(scaleN), uint32(scaleD))
}

func optTC(tc Timecode, ok bool) *Timecode {
	if !ok {
		return nil
	}
	return &tc
}

// CanGenerateOutput reports whether an output frame is owed against the
// current virtual clock, used both by Poll mid-stream and by Drain at
// end-of-stream: true iff both rates are
// known and the virtual input clock has caught up to (or passed) the
// next output frame's time.
func (rc *RateController) CanGenerateOutput(state *ConverterState) bool {
	inFps, outFps := state.InFps, state.OutFps
	if inFps.IsZero() || outFps.IsZero() {
		return false
	}
	lhs := state.InputFrames * int64(inFps.FpsD) * int64(outFps.FpsN)
	rhs := (state.OutputFrames + 1) * int64(outFps.FpsD) * int64(inFps.FpsN)
	return lhs >= rhs
}

// Drain synthesises output from held scratch at end-of-stream, looping
// while scratch remains or CanGenerateOutput holds, advancing the
// virtual input clock on each "dropped" (no-output) iteration. It
// returns every output block produced, in order.
func (rc *RateController) Drain(state *ConverterState) ([]StepResult, error) {
	var results []StepResult
	for i := 0; state.ScratchLen > 0 || rc.CanGenerateOutput(state); i++ {
		if i >= maxDrainIterations {
			return results, errInternalInvariant
		}
		res, err := rc.advance(state, nil, nil)
		if err != nil {
			return results, err
		}
		if res.Emitted {
			results = append(results, res)
		} else {
			state.InputFrames++
		}
	}
	return results, nil
}
