package caption

import "log/slog"

// Writer produces CDP packets and advances the free-running sequence
// counter each call. It holds only a logger; the counter it advances
// belongs to the caller's ConverterState.
type Writer struct {
	log *slog.Logger
}

// NewWriter returns a Writer that logs truncation warnings to log.
func NewWriter(log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	return &Writer{log: log}
}

// WriteCDP serialises triplets into a CDP packet targeting fps, with an
// optional timecode, advancing and consuming *seq (the ConverterState's
// sequence counter). If triplets exceeds fps.MaxCCCount it is truncated
// with a warning; the rate controller is expected to prevent this in
// normal operation.
func (w *Writer) WriteCDP(triplets []Triplet, tc *Timecode, fps FpsEntry, seq *uint16) []byte {
	maxTriplets := int(fps.MaxCCCount)
	if len(triplets) > maxTriplets {
		w.log.Warn("cc_data block exceeds frame-rate triplet budget, truncating",
			"count", len(triplets), "max", maxTriplets)
		triplets = triplets[:maxTriplets]
	}

	buf := make([]byte, 0, MaxCDPPacketLen)
	buf = append(buf, cdpID0, cdpID1)
	buf = append(buf, 0x00) // length placeholder, patched below
	buf = append(buf, fps.ID)

	flags := cdpFlagCCDataPresent | cdpFlagCaptionSvcAct | cdpFlagReservedOne
	if tc != nil {
		flags |= cdpFlagTimeCodePresent
	}
	buf = append(buf, flags)

	seqVal := *seq
	buf = append(buf, byte(seqVal>>8), byte(seqVal))

	if tc != nil {
		tcBytes := encodeTimecodeBytes(*tc)
		buf = append(buf, cdpTimeCodeSectionID)
		buf = append(buf, tcBytes[:]...)
	}

	buf = append(buf, cdpCCDataSectionID)
	buf = append(buf, cdpCCCountTopBits|fps.MaxCCCount)

	for _, t := range triplets {
		buf = append(buf, t.Header, t.Data1, t.Data2)
	}
	for i := len(triplets); i < maxTriplets; i++ {
		buf = append(buf, paddingTriplet.Header, paddingTriplet.Data1, paddingTriplet.Data2)
	}

	buf = append(buf, cdpFooterSectionID)
	buf = append(buf, byte(seqVal>>8), byte(seqVal))
	buf = append(buf, 0x00) // checksum placeholder, patched below

	buf[2] = byte(len(buf))

	var sum byte
	for _, b := range buf {
		sum += b
	}
	buf[len(buf)-1] = byte((256 - int(sum)) % 256)

	*seq = seqVal + 1

	return buf
}
