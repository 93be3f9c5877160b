package caption

import "log/slog"

// maxRawCCCount is the hard upper bound on 608-rate triplets/pairs a
// single frame may carry, independent of any CDP frame-rate cap; no
// 608-rate carriage legitimately carries more.
const maxRawCCCount = 3

// decode708CapCount is the ceiling applied to a raw cc_data carriage
// before compaction, the largest per-frame budget in the CDP rate table.
const decode708CapCount = 25

// Decoder normalises any of the four caption carriages into a bounded
// cc_data triplet stream. It holds only a logger; decoding is otherwise
// stateless and carries no data between calls.
type Decoder struct {
	log *slog.Logger
}

// NewDecoder returns a Decoder that logs recoverable malformed-input
// conditions to log.
func NewDecoder(log *slog.Logger) *Decoder {
	if log == nil {
		log = slog.Default()
	}
	return &Decoder{log: log}
}

// DecodeCEA608Raw decodes a sequence of 608 byte pairs into cc_data
// triplets, each tagged valid/field-1. An odd-length input is truncated
// by one byte with a warning; more than maxRawCCCount pairs are
// discarded with a warning.
func (d *Decoder) DecodeCEA608Raw(data []byte) []Triplet {
	if len(data)%2 != 0 {
		d.log.Warn("608 raw payload has odd length, truncating", "len", len(data))
		data = data[:len(data)-1]
	}
	pairs := len(data) / 2
	if pairs > maxRawCCCount {
		d.log.Warn("608 raw payload exceeds per-frame cap, discarding excess",
			"pairs", pairs, "cap", maxRawCCCount)
		pairs = maxRawCCCount
	}
	out := make([]Triplet, 0, pairs)
	for i := 0; i < pairs; i++ {
		out = append(out, Triplet{Header: hdrValidField1, Data1: data[2*i], Data2: data[2*i+1]})
	}
	return out
}

// DecodeCEA608S334_1A decodes S334-1A triplets (flag, d0, d1) into
// cc_data triplets. A length not a multiple of 3 is truncated; more than
// maxRawCCCount triplets are discarded with a warning.
func (d *Decoder) DecodeCEA608S334_1A(data []byte) []Triplet {
	if rem := len(data) % 3; rem != 0 {
		d.log.Warn("s334-1a payload length not a multiple of 3, truncating",
			"len", len(data), "excess_bytes", rem)
		data = data[:len(data)-rem]
	}
	count := len(data) / 3
	if count > maxRawCCCount {
		d.log.Warn("s334-1a payload exceeds per-frame cap, discarding excess",
			"count", count, "cap", maxRawCCCount)
		count = maxRawCCCount
	}
	out := make([]Triplet, 0, count)
	for i := 0; i < count; i++ {
		flag, d0, d1 := data[3*i], data[3*i+1], data[3*i+2]
		field1 := flag&0x80 != 0
		if field1 {
			out = append(out, Triplet{Header: hdrValidField1, Data1: d0, Data2: d1})
		} else {
			out = append(out, Triplet{Header: hdrValidField2, Data1: d0, Data2: d1})
		}
	}
	return out
}

// DecodeCEA708CcData decodes an already triplet-aligned cc_data byte
// stream, caps it at decode708CapCount triplets, and applies Compact.
func (d *Decoder) DecodeCEA708CcData(data []byte) []Triplet {
	if rem := len(data) % 3; rem != 0 {
		d.log.Warn("cc_data payload length not a multiple of 3, truncating",
			"len", len(data), "excess_bytes", rem)
		data = data[:len(data)-rem]
	}
	count := len(data) / 3
	if count > decode708CapCount {
		d.log.Warn("cc_data payload exceeds 25-triplet cap, discarding excess",
			"count", count, "cap", decode708CapCount)
		count = decode708CapCount
	}
	triplets := make([]Triplet, 0, count)
	for i := 0; i < count; i++ {
		triplets = append(triplets, Triplet{
			Header: data[3*i],
			Data1:  data[3*i+1],
			Data2:  data[3*i+2],
		})
	}
	return Compact(triplets)
}

// Compact removes invalid triplets from a cc_data stream, with one
// exception: an invalid triplet occupying a 608 position that occurs
// before the first 708-start triplet is preserved in place, so that
// 608-position triplets remain in order regardless of validity. Padding
// and any other invalid triplet in the 708 tail is removed. The result
// satisfies: all 608 triplets first, all 708 triplets second, with no
// invalid padding between them.
//
// Compact is idempotent: compacting an already-compacted stream returns
// it unchanged.
func Compact(triplets []Triplet) []Triplet {
	firstCCPStart := -1
	for i, t := range triplets {
		if t.Is708Start() {
			firstCCPStart = i
			break
		}
	}

	out := make([]Triplet, 0, len(triplets))
	for i, t := range triplets {
		switch {
		case t.Valid():
			out = append(out, t)
		case t.Is608() && (firstCCPStart < 0 || i < firstCCPStart):
			// Invalid but in 608 position, ahead of any 708 content: kept
			// for bit-compatibility with producers that emit unclean 608
			// fill ahead of the CCP.
			out = append(out, t)
		}
	}
	return out
}
