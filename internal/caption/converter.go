package caption

import (
	"errors"
	"log/slog"
)

// ErrInvalidCaps is returned by SetCaps and Convert when the configured
// carriage kinds are unusable. Fatal for the stream.
var ErrInvalidCaps = errors.New("caption: invalid caps")

// Caps fixes a conversion pair: input/output carriage and, where the
// carriage is rate-sensitive, input/output frame rate. FpsN/FpsD may be
// left 0/0 when unspecified; if either is unspecified and the pair
// requires rate conversion, the converter falls back to 1:1 scale rather
// than failing.
type Caps struct {
	InKind  CarriageKind
	InFpsN  uint32
	InFpsD  uint32
	OutKind CarriageKind
	OutFpsN uint32
	OutFpsD uint32
}

func validKind(k CarriageKind) bool {
	return k >= Cea608Raw && k <= Cea708Cdp
}

// Converter is the single conversion entry point: SetCaps, Convert,
// Flush, EndOfStream, Stop. One Converter serves exactly one stream; it
// is not safe for concurrent use by multiple goroutines.
type Converter struct {
	log     *slog.Logger
	decoder *Decoder
	writer  *Writer
	rc      *RateController
	state   ConverterState
	capsSet bool
}

// NewConverter returns a Converter that logs to log (or the default
// logger, if nil).
func NewConverter(log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{
		log:     log,
		decoder: NewDecoder(log),
		writer:  NewWriter(log),
		rc:      NewRateController(log),
	}
}

// SetCaps fixes the conversion pair. It does not reset counters; call
// Start afterward to begin a stream.
func (c *Converter) SetCaps(caps Caps) error {
	if !validKind(caps.InKind) || !validKind(caps.OutKind) {
		c.log.Error("invalid caps", "in_kind", caps.InKind, "out_kind", caps.OutKind)
		return ErrInvalidCaps
	}
	c.state.InKind = caps.InKind
	c.state.OutKind = caps.OutKind
	c.state.InFps = LookupFPS(caps.InFpsN, caps.InFpsD)
	c.state.OutFps = LookupFPS(caps.OutFpsN, caps.OutFpsD)
	c.capsSet = true
	c.log.Debug("caps set", "in", caps.InKind, "out", caps.OutKind,
		"in_fps", c.state.InFps, "out_fps", c.state.OutFps)
	return nil
}

// Start zeroes all counters, clears scratch, and clears timecodes.
func (c *Converter) Start() {
	c.state.reset()
}

// Flush is Start without re-announcing caps; since Start never touches
// caps, the two share an implementation.
func (c *Converter) Flush() {
	c.state.reset()
}

// Stop releases the retained previous buffer and clears all state,
// including the configured caps; SetCaps must be called again before
// the next Convert.
func (c *Converter) Stop() {
	c.state = ConverterState{}
	c.capsSet = false
}

// Convert runs one input payload through ingress decode, rate control,
// and egress encode, returning the output payload (possibly empty) and
// an output timecode if one is available. tc is the
// input payload's side-channel timecode, or nil if none was supplied.
// When converting to a higher output frame rate, a single Convert call
// may not drain everything the virtual clock now owes; callers should
// follow each Convert with a Poll loop (see Poll) to pick up any
// additional frames before the next real input arrives.
func (c *Converter) Convert(payload []byte, tc *Timecode) ([]byte, *Timecode, error) {
	if !c.capsSet {
		return nil, nil, ErrInvalidCaps
	}

	c.state.PreviousBuffer = payload

	if c.state.InKind == c.state.OutKind &&
		(c.state.InFps.IsZero() || c.state.OutFps.IsZero() || ratesEquivalent(c.state.InFps, c.state.OutFps)) {
		// Same kind and intersecting caps: byte-for-byte passthrough, no
		// synthesized timecode. Same-kind conversions with a genuine rate
		// change (CDP at 60000/1001 in, 30000/1001 out) still take the
		// full path.
		return payload, nil, nil
	}

	triplets, effectiveTC := c.ingress(payload, tc)

	res, err := c.rc.Step(&c.state, triplets, effectiveTC)
	if err != nil {
		return nil, nil, err
	}
	if !res.Emitted {
		return nil, nil, nil
	}

	outTC := c.advanceOutputTimecode(res.Timecode)
	out := c.egress(res.Triplets, outTC)
	return out, outTC, nil
}

// ingress normalises payload (in the carriage set by SetCaps) to a
// compacted triplet stream, returning the timecode that should drive
// interpolation: the explicit tc argument if present, otherwise (for CDP
// input) the packet's embedded timecode.
func (c *Converter) ingress(payload []byte, tc *Timecode) ([]Triplet, *Timecode) {
	switch c.state.InKind {
	case Cea608Raw:
		return c.decoder.DecodeCEA608Raw(payload), tc
	case Cea608S334_1A:
		return c.decoder.DecodeCEA608S334_1A(payload), tc
	case Cea708CcData:
		return c.decoder.DecodeCEA708CcData(payload), tc
	case Cea708Cdp:
		res, err := ReadCDP(payload)
		if err != nil {
			c.log.Warn("malformed CDP input, emitting best-effort empty result", "error", err)
			return nil, tc
		}
		if c.state.InFps.IsZero() {
			// Host left the input rate unspecified; learn it from the
			// self-describing CDP packet.
			c.state.InFps = res.Fps
		}
		triplets := Compact(res.Triplets)
		effectiveTC := tc
		if effectiveTC == nil {
			effectiveTC = res.Timecode
		}
		return triplets, effectiveTC
	default:
		return nil, tc
	}
}

// egress serialises triplets into the carriage set by SetCaps.
func (c *Converter) egress(triplets []Triplet, tc *Timecode) []byte {
	switch c.state.OutKind {
	case Cea608Raw:
		return EncodeCEA608Raw(triplets)
	case Cea608S334_1A:
		return EncodeCEA608S334_1A(triplets)
	case Cea708CcData:
		return EncodeCEA708CcData(triplets)
	case Cea708Cdp:
		return c.writer.WriteCDP(triplets, tc, c.state.OutFps, &c.state.CDPSequenceCounter)
	default:
		return nil
	}
}

// advanceOutputTimecode maintains the output-timecode side channel: a
// freshly interpolated timecode becomes the converter's current output
// timecode; absent a fresh one, the
// previously held timecode (already advanced past the prior frame) is
// reused. Either way, the held timecode is advanced by one frame for the
// next call once this frame's value has been captured.
func (c *Converter) advanceOutputTimecode(fresh *Timecode) *Timecode {
	var current *Timecode
	if fresh != nil {
		current = fresh
	} else {
		current = c.state.CurrentOutputTimecode
	}
	if current == nil {
		return nil
	}

	ret := *current
	next := *current
	Advance(&next)
	c.state.CurrentOutputTimecode = &next
	return &ret
}

// Poll synthesises an additional output frame from held scratch without
// consuming new input, returning ok=false when no output frame is owed
// yet. When the output rate exceeds the input rate, a single
// Convert call's split may leave more than one output frame's worth of
// data in scratch. Hosts should call Poll in a loop after every Convert
// (and not only at end-of-stream, where EndOfStream does this
// automatically) to drain that backlog as soon as it's owed, keeping
// output strictly paced to the virtual clock rather than bursting at the
// next real input.
func (c *Converter) Poll() ([]byte, *Timecode, bool, error) {
	if !c.rc.CanGenerateOutput(&c.state) {
		return nil, nil, false, nil
	}
	res, err := c.rc.Poll(&c.state, nil)
	if err != nil {
		return nil, nil, false, err
	}
	if !res.Emitted {
		return nil, nil, false, nil
	}
	outTC := c.advanceOutputTimecode(res.Timecode)
	return c.egress(res.Triplets, outTC), outTC, true, nil
}

// EndOfStream drains any held scratch across synthesised output frames,
// returning each drained frame's egress-encoded payload and timecode in
// order, then resets the converter.
func (c *Converter) EndOfStream() ([][]byte, []*Timecode, error) {
	results, err := c.rc.Drain(&c.state)
	if err != nil {
		c.state.reset()
		return nil, nil, err
	}

	outPayloads := make([][]byte, 0, len(results))
	outTCs := make([]*Timecode, 0, len(results))
	for _, res := range results {
		tc := c.advanceOutputTimecode(res.Timecode)
		outPayloads = append(outPayloads, c.egress(res.Triplets, tc))
		outTCs = append(outTCs, tc)
	}

	c.state.reset()
	return outPayloads, outTCs, nil
}

// CurrentOutputTimecode returns the converter's held output timecode, or
// nil if none has been established yet.
func (c *Converter) CurrentOutputTimecode() *Timecode {
	if c.state.CurrentOutputTimecode == nil {
		return nil
	}
	tc := *c.state.CurrentOutputTimecode
	return &tc
}

// PreviousPayload returns the most recent input payload handed to
// Convert, or nil if none has arrived since the last reset. Frames
// synthesized by Poll and EndOfStream carry no input of their own, so a
// host that attaches per-payload transport metadata copies it from this
// payload's record onto each synthesized frame. Drain completion clears
// the retained payload; read it before calling EndOfStream.
func (c *Converter) PreviousPayload() []byte {
	return c.state.PreviousBuffer
}
