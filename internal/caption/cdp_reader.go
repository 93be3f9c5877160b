package caption

import "log/slog"

// ReadCDPResult holds the output of parsing a CDP packet: the embedded
// cc_data triplets, the embedded timecode (if the packet carried one),
// and the FpsEntry the packet's id byte identified.
type ReadCDPResult struct {
	Triplets []Triplet
	Timecode *Timecode
	Fps      FpsEntry
}

// ReadCDP parses a CDP packet. Any structural check failure, evaluated
// in order, returns a zero ReadCDPResult and a non-nil error; the
// checksum footer is not verified (tolerant parse).
func ReadCDP(data []byte) (ReadCDPResult, error) {
	// 1. length >= minimum header+footer.
	if len(data) < cdpMinPacketLen {
		return ReadCDPResult{}, errCDPStructural
	}
	// 2. identifier.
	if data[0] != cdpID0 || data[1] != cdpID1 {
		return ReadCDPResult{}, errCDPStructural
	}
	// 3. byte 2 equals total packet length.
	if int(data[2]) != len(data) {
		return ReadCDPResult{}, errCDPStructural
	}
	// 4. byte 3 is a legal FpsEntry id.
	fps := LookupFPSByID(data[3])
	if fps.IsZero() {
		return ReadCDPResult{}, errCDPStructural
	}
	// 5. flags octet: cc_data_present must be set.
	flags := data[4]
	if flags&cdpFlagCCDataPresent == 0 {
		return ReadCDPResult{}, errCDPStructural
	}
	timeCodePresent := flags&cdpFlagTimeCodePresent != 0

	// 6. sequence counter: read but not checked.
	pos := 7 // past id(2) + len(1) + fpsid(1) + flags(1) + seq(2)

	var tc *Timecode
	if timeCodePresent {
		// 7. time code section: exactly 5 bytes starting 0x71.
		if pos+cdpTimeCodeSectionLen > len(data) {
			return ReadCDPResult{}, errCDPStructural
		}
		if data[pos] != cdpTimeCodeSectionID {
			return ReadCDPResult{}, errCDPStructural
		}
		var tcBytes [4]byte
		copy(tcBytes[:], data[pos+1:pos+5])
		decoded, err := decodeTimecodeBytes(tcBytes, fps.FpsN, fps.FpsD)
		if err != nil {
			return ReadCDPResult{}, err
		}
		tc = &decoded
		pos += cdpTimeCodeSectionLen
	}

	// 8. cc_data section must start 0x72; second byte is 111ccccc.
	if pos+2 > len(data) {
		return ReadCDPResult{}, errCDPStructural
	}
	if data[pos] != cdpCCDataSectionID {
		return ReadCDPResult{}, errCDPStructural
	}
	countByte := data[pos+1]
	if countByte&cdpCCCountTopBits != cdpCCCountTopBits {
		return ReadCDPResult{}, errCDPStructural
	}
	count := int(countByte &^ cdpCCCountTopBits)
	pos += 2

	// The count field can represent up to 31, more than any legal rate's
	// max_cc_count allows. Truncate to the largest well-formed prefix
	// rather than trusting the sender.
	if max := int(fps.MaxCCCount); count > max {
		slog.Default().Warn("CDP cc_data count exceeds max_cc_count for declared rate, truncating",
			"count", count, "max", max)
		count = max
	}

	// 9. exactly 3*count cc_data bytes follow.
	if pos+3*count > len(data) {
		return ReadCDPResult{}, errCDPStructural
	}
	triplets := make([]Triplet, 0, count)
	for i := 0; i < count; i++ {
		triplets = append(triplets, Triplet{
			Header: data[pos+3*i],
			Data1:  data[pos+3*i+1],
			Data2:  data[pos+3*i+2],
		})
	}

	return ReadCDPResult{Triplets: triplets, Timecode: tc, Fps: fps}, nil
}
