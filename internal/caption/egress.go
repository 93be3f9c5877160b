package caption

// EncodeCEA608Raw serialises a triplet stream to 608 raw byte pairs,
// keeping only triplets with header 0xFC (valid, field 1); the raw
// carriage has no field-2 slot.
func EncodeCEA608Raw(triplets []Triplet) []byte {
	out := make([]byte, 0, len(triplets)*2)
	for _, t := range triplets {
		if t.Header == hdrValidField1 {
			out = append(out, t.Data1, t.Data2)
		}
	}
	return out
}

// EncodeCEA608S334_1A serialises a triplet stream to S334-1A triplets,
// keeping only 608 triplets (valid field 1 or field 2) and re-tagging the
// field flag byte (0x80 for field 1, 0x00 for field 2).
func EncodeCEA608S334_1A(triplets []Triplet) []byte {
	out := make([]byte, 0, len(triplets)*3)
	for _, t := range triplets {
		switch t.Header {
		case hdrValidField1:
			out = append(out, 0x80, t.Data1, t.Data2)
		case hdrValidField2:
			out = append(out, 0x00, t.Data1, t.Data2)
		}
	}
	return out
}

// EncodeCEA708CcData serialises a triplet stream as-is; cc_data triplets
// are already their own native wire form.
func EncodeCEA708CcData(triplets []Triplet) []byte {
	out := make([]byte, 0, len(triplets)*3)
	for _, t := range triplets {
		out = append(out, t.Header, t.Data1, t.Data2)
	}
	return out
}
