package caption

import "errors"

// CDP framing constants (SMPTE 334-2).
const (
	cdpID0 byte = 0x96
	cdpID1 byte = 0x69

	cdpFlagTimeCodePresent byte = 0x80
	cdpFlagCCDataPresent   byte = 0x40
	cdpFlagCaptionSvcAct   byte = 0x02
	cdpFlagReservedOne     byte = 0x01

	cdpTimeCodeSectionID byte = 0x71
	cdpTimeCodeSectionLen int = 5

	cdpCCDataSectionID   byte = 0x72
	cdpCCCountTopBits    byte = 0xE0 // top 3 bits of the count byte: "111"

	cdpFooterSectionID byte = 0x74

	cdpMinPacketLen = 11

	// MaxCDPPacketLen bounds all legal CDP outputs given the FPS table's
	// largest max_cc_count (25 triplets at 24000/1001 and 24/1).
	MaxCDPPacketLen = 256
)

// errCDPStructural is returned by every CDP structural-check failure;
// callers treat it as a recoverable, per-payload condition and emit a
// best-effort (possibly empty) output for the frame.
var errCDPStructural = errors.New("caption: malformed CDP packet")

// encodeTimecodeBytes packs tc into the 4 data bytes that follow the
// 0x71 time-code section marker: hours as "11" + BCD tens/units, minutes
// as "1" + BCD tens/units, seconds as field flag + BCD tens/units, and
// frames as a direct binary value with the drop-frame flag in the top
// bit and the 0x40 reserved bit held clear.
func encodeTimecodeBytes(tc Timecode) [4]byte {
	tensH, unitsH := tc.Hours/10, tc.Hours%10
	tensM, unitsM := tc.Minutes/10, tc.Minutes%10
	tensS, unitsS := tc.Seconds/10, tc.Seconds%10

	b0 := 0xC0 | (byte(tensH)&0x3)<<4 | byte(unitsH)&0xF // "11" + tens(2) + units(4)
	b1 := 0x80 | (byte(tensM)&0x7)<<4 | byte(unitsM)&0xF // "1" + tens(3) + units(4)
	b2 := (byte(tensS)&0x7)<<4 | byte(unitsS)&0xF
	if tc.FieldCount == 2 {
		b2 |= 0x80
	}
	b3 := byte(tc.Frames) & 0x3F // bit6 (0x40) left clear; bit7 set below
	if tc.DropFrame {
		b3 |= 0x80
	}
	return [4]byte{b0, b1, b2, b3}
}

// decodeTimecodeBytes is the inverse of encodeTimecodeBytes. It verifies
// the constant reserved-bit prefixes on the hours and minutes bytes and
// the mandated-clear 0x40 bit of the frames byte, returning
// errCDPStructural on mismatch.
func decodeTimecodeBytes(b [4]byte, fpsN, fpsD uint32) (Timecode, error) {
	if b[0]&0xC0 != 0xC0 {
		return Timecode{}, errCDPStructural
	}
	if b[1]&0x80 != 0x80 {
		return Timecode{}, errCDPStructural
	}
	if b[3]&0x40 != 0 {
		return Timecode{}, errCDPStructural
	}

	tensH := (b[0] >> 4) & 0x3
	unitsH := b[0] & 0xF
	tensM := (b[1] >> 4) & 0x7
	unitsM := b[1] & 0xF
	fieldCount := 1
	if b[2]&0x80 != 0 {
		fieldCount = 2
	}
	tensS := (b[2] >> 4) & 0x7
	unitsS := b[2] & 0xF
	dropFrame := b[3]&0x80 != 0
	frames := int(b[3] & 0x3F)

	return Timecode{
		FpsN:       fpsN,
		FpsD:       fpsD,
		DropFrame:  dropFrame,
		Hours:      int(tensH)*10 + int(unitsH),
		Minutes:    int(tensM)*10 + int(unitsM),
		Seconds:    int(tensS)*10 + int(unitsS),
		Frames:     frames,
		FieldCount: fieldCount,
	}, nil
}
