package caption

import "fmt"

// CarriageKind identifies one of the four broadcast caption carriages.
// Values are ordered from least to most information-bearing; this
// ordering drives passthrough and caps-selection decisions made by hosts.
type CarriageKind int

const (
	// Cea608Raw carries byte pairs, one pair per frame, field 1 only.
	Cea608Raw CarriageKind = iota
	// Cea608S334_1A carries triplets annotated with a field indicator.
	Cea608S334_1A
	// Cea708CcData carries arbitrary 608/708 triplets with validity/type bits.
	Cea708CcData
	// Cea708Cdp carries framed CDP packets wrapping a cc_data section.
	Cea708Cdp
)

// String returns a human-readable carriage name for logging.
func (k CarriageKind) String() string {
	switch k {
	case Cea608Raw:
		return "cea608_raw"
	case Cea608S334_1A:
		return "cea608_s334_1a"
	case Cea708CcData:
		return "cea708_cc_data"
	case Cea708Cdp:
		return "cea708_cdp"
	default:
		return fmt.Sprintf("carriage(%d)", int(k))
	}
}

// cc_data triplet header byte values for the four (valid, type)
// combinations CEA-708 defines.
const (
	hdrValidField1   byte = 0xFC // valid, type 0: 608 field 1
	hdrValidField2   byte = 0xFD // valid, type 1: 608 field 2
	hdrValid708Start byte = 0xFE // valid, type 2: 708 start
	hdrValid708Cont  byte = 0xFF // valid, type 3: 708 continuation
	hdrPaddingByte   byte = 0xFA // invalid padding triplet header
	ccValidBit       byte = 0x04 // bit 2
	ccTypeMask       byte = 0x03 // bits 1-0
	ccTypeField1     byte = 0
	ccTypeField2     byte = 1
	ccType708Start   byte = 2
	ccType708Cont    byte = 3
)

// Triplet is a single 3-byte cc_data unit: (header, data1, data2). In
// cc_data form, header bit 2 is the validity flag and bits 1-0 are the
// type (0=608 field 1, 1=608 field 2, 2=708 start, 3=708 continuation).
type Triplet struct {
	Header byte
	Data1  byte
	Data2  byte
}

// Valid reports whether the triplet's validity bit is set.
func (t Triplet) Valid() bool { return t.Header&ccValidBit != 0 }

// Type returns the triplet's 2-bit type field.
func (t Triplet) Type() byte { return t.Header & ccTypeMask }

// Is608 reports whether the triplet occupies a 608 position (type 0 or 1),
// irrespective of its validity bit.
func (t Triplet) Is608() bool {
	typ := t.Type()
	return typ == ccTypeField1 || typ == ccTypeField2
}

// Is708Start reports whether the triplet is a 708 DTVCC packet start unit.
func (t Triplet) Is708Start() bool { return t.Valid() && t.Type() == ccType708Start }

// Bytes returns the triplet's 3-byte wire form.
func (t Triplet) Bytes() [3]byte { return [3]byte{t.Header, t.Data1, t.Data2} }

// paddingTriplet is the well-known filler triplet used to pad a cc_data
// block out to a frame rate's maximum triplet count.
var paddingTriplet = Triplet{Header: hdrPaddingByte, Data1: 0x00, Data2: 0x00}

// FpsEntry describes a CDP-legal frame rate: its one-byte CDP identifier,
// its rate as a fraction, and the maximum number of cc_data triplets that
// fit in one frame at that rate.
type FpsEntry struct {
	ID         byte
	FpsN       uint32
	FpsD       uint32
	MaxCCCount uint8
}

// IsZero reports whether e is the null "unknown/invalid" entry.
func (e FpsEntry) IsZero() bool {
	return e.ID == 0 && e.FpsN == 0 && e.FpsD == 0 && e.MaxCCCount == 0
}

// IsDropFrame reports whether a rate with this fraction conventionally
// carries drop-frame timecode (30000/1001 or 60000/1001).
func (e FpsEntry) IsDropFrame() bool {
	return e.FpsD == 1001 && (e.FpsN == 30000 || e.FpsN == 60000)
}

// Timecode is a SMPTE-style broadcast timecode scoped to a frame rate.
type Timecode struct {
	FpsN       uint32
	FpsD       uint32
	DropFrame  bool
	Hours      int
	Minutes    int
	Seconds    int
	Frames     int
	FieldCount int // 1 or 2
}

// String formats the timecode as HH:MM:SS;FF (drop-frame) or HH:MM:SS:FF.
func (tc Timecode) String() string {
	sep := ":"
	if tc.DropFrame {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", tc.Hours, tc.Minutes, tc.Seconds, sep, tc.Frames)
}

// CcDataBlock is a bounded sequence of triplets: length <= max_cc_count for
// the carriage's frame rate. 608-position triplets precede any 708
// triplets; padding triplets fill an output block to exactly the target
// rate's maximum.
type CcDataBlock struct {
	Triplets []Triplet
}

// Bytes serialises the block to its flat 3*len(Triplets) wire form.
func (b CcDataBlock) Bytes() []byte {
	out := make([]byte, 0, len(b.Triplets)*3)
	for _, t := range b.Triplets {
		out = append(out, t.Header, t.Data1, t.Data2)
	}
	return out
}

// ConverterState holds the per-instance, per-stream mutable state a
// Converter threads across calls to Convert. It is never shared between
// stream instances.
type ConverterState struct {
	InKind  CarriageKind
	OutKind CarriageKind
	InFps   FpsEntry
	OutFps  FpsEntry

	CurrentOutputTimecode *Timecode

	InputFrames  int64
	OutputFrames int64

	Scratch    []Triplet
	ScratchLen int

	CDPSequenceCounter uint16

	PreviousBuffer []byte
}

// reset zeros all counters and clears held buffers, the shared core of
// Start, Flush, and end-of-stream drain completion.
func (s *ConverterState) reset() {
	s.CurrentOutputTimecode = nil
	s.InputFrames = 0
	s.OutputFrames = 0
	s.Scratch = nil
	s.ScratchLen = 0
	s.PreviousBuffer = nil
}
