// Package caption implements a streaming converter between the four
// broadcast closed-caption carriages: CEA-608 raw byte pairs, CEA-608
// S334-1A triplets, CEA-708 cc_data triplets, and CEA-708 CDP (Caption
// Distribution Packet) frames.
//
// The converter normalises any input carriage to a bounded cc_data triplet
// stream, rescales the per-frame triplet budget across frame-rate changes,
// and re-serialises into the target carriage, carrying overflow across
// frames and interpolating timecodes where present. It does not interpret
// caption content (no character rendering, no service/window state) and
// performs no transport or buffer-allocation work; callers hand it payload
// bytes and get payload bytes back.
package caption
