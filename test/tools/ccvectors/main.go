// Command ccvectors generates synthetic closed-caption frame streams in
// ccconvert's on-disk carriage format, for exercising the converter and
// its CLI without needing a captured broadcast feed.
//
// It builds the same roll-up-mode CEA-608 byte-pair sequence the
// original caption-injection tooling used for test fixtures: the
// roll-up, erase and row-address control pairs, each sent twice, then
// one character pair per frame, padded with the null pair after the
// caption.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zsiec/ccconvert/internal/caption"
)

func main() {
	var (
		outPath = flag.String("out", "", "output frame stream path")
		kindS   = flag.String("kind", "cea708_cc_data", "carriage kind: cea608_raw, cea608_s334_1a, cea708_cc_data, or cea708_cdp")
		fpsID   = flag.String("fps-id", "5F", "CDP frame-rate identifier byte, hex (used only for cea708_cdp output)")
		frames  = flag.Int("frames", 90, "number of frames to generate")
		text    = flag.String("text", "HELLO FROM CCVECTORS", "caption text to encode, roll-up style")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *outPath == "" {
		log.Error("-out is required")
		os.Exit(1)
	}

	var idByte byte
	if _, err := fmt.Sscanf(*fpsID, "%x", &idByte); err != nil {
		log.Error("bad -fps-id", "error", err)
		os.Exit(1)
	}
	fps := caption.LookupFPSByID(idByte)
	if fps.IsZero() {
		log.Error("unknown -fps-id", "fps_id", *fpsID)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Error("create output", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)

	pairs := buildRollUpPairs(*text, *frames)

	writer := caption.NewWriter(log)
	var seq uint16

	for i := 0; i < *frames; i++ {
		pair := pairs[i]
		triplets := []caption.Triplet{{Header: 0xFC, Data1: pair.data1, Data2: pair.data2}}

		var payload []byte
		switch *kindS {
		case "cea608_raw":
			payload = caption.EncodeCEA608Raw(triplets)
		case "cea608_s334_1a":
			payload = caption.EncodeCEA608S334_1A(triplets)
		case "cea708_cc_data":
			payload = caption.EncodeCEA708CcData(triplets)
		case "cea708_cdp":
			payload = writer.WriteCDP(triplets, nil, fps, &seq)
		default:
			log.Error("unknown -kind", "kind", *kindS)
			os.Exit(1)
		}

		if err := writeFrame(w, payload); err != nil {
			log.Error("write frame", "index", i, "error", err)
			os.Exit(1)
		}
	}

	if err := w.Flush(); err != nil {
		log.Error("flush", "error", err)
		os.Exit(1)
	}
	log.Info("generated caption vector file", "path", *outPath, "frames", *frames, "kind", *kindS)
}

func writeFrame(w *bufio.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

type ccPair struct {
	data1, data2 byte
}

// buildRollUpPairs lays out a roll-up-2 CEA-608 command/text sequence
// across n frames: RU2, EDM and the PAC sent twice each for decoder dedup
// (the real-world requirement that repeated control codes be ignored
// the second time), one character pair per frame after that, and the
// null pair (0x80, 0x80) filling any remaining frames.
func buildRollUpPairs(text string, n int) []ccPair {
	out := make([]ccPair, n)
	for i := range out {
		out[i] = ccPair{0x80, 0x80}
	}

	seq := []ccPair{
		{0x14, 0x25}, {0x14, 0x25}, // RU2, dedup
		{0x14, 0x2C}, {0x14, 0x2C}, // EDM, dedup
		{0x14, 0x60}, {0x14, 0x60}, // PAC row 14, dedup
	}
	clean := make([]byte, 0, len(text))
	for _, ch := range text {
		if ch >= 0x20 && ch <= 0x7E {
			clean = append(clean, byte(ch))
		}
	}
	for i := 0; i < len(clean); i += 2 {
		d2 := byte(0x80)
		if i+1 < len(clean) {
			d2 = clean[i+1]
		}
		seq = append(seq, ccPair{clean[i], d2})
	}

	for i, p := range seq {
		if i >= n {
			break
		}
		out[i] = p
	}
	return out
}
