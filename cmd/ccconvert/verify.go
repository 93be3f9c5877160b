package main

import (
	"log/slog"

	"github.com/zsiec/ccx"

	"github.com/zsiec/ccconvert/internal/caption"
)

// captionVerifier is an external, best-effort smoke-check on converted
// output: it feeds emitted frames through ccx's own 608/708 decoders to
// confirm the re-framed bytes are still readable captions, not just
// well-formed structure. It never influences conversion, only -verify's
// exit-time report.
type captionVerifier struct {
	log *slog.Logger

	cea608 map[int]*ccx.CEA608Decoder
	cea708 map[int]*ccx.CEA708Service

	// dtvccBuf accumulates DTVCC packet bytes across 708 start and
	// continuation triplets until the next packet start flushes it.
	dtvccBuf []byte

	cea608Lines int
	cea708Lines int
}

func newCaptionVerifier(log *slog.Logger) *captionVerifier {
	v := &captionVerifier{
		log:    log,
		cea608: make(map[int]*ccx.CEA608Decoder, 4),
		cea708: make(map[int]*ccx.CEA708Service, 6),
	}
	for ch := 1; ch <= 4; ch++ {
		v.cea608[ch] = ccx.NewCEA608Decoder()
	}
	for svc := 1; svc <= 6; svc++ {
		v.cea708[svc] = ccx.NewCEA708Service()
	}
	return v
}

// observe decodes one output frame's triplets (extracting them from
// whichever carriage kind was written) through ccx, accumulating any
// decoded text lines for the final report.
func (v *captionVerifier) observe(payload []byte, kind caption.CarriageKind) {
	triplets := v.tripletsFor(payload, kind)
	for _, t := range triplets {
		switch {
		case t.Valid() && t.Is608():
			ch := 1
			if t.Type() == 1 {
				ch = 2
			}
			if text := v.cea608[ch].Decode(t.Data1, t.Data2); text != "" {
				v.cea608Lines++
				v.log.Debug("cea608 decoded line", "channel", ch, "text", text)
			}
		case t.Is708Start():
			v.drainDTVCC()
			v.dtvccBuf = append(v.dtvccBuf[:0], t.Data1, t.Data2)
		case t.Valid() && t.Type() == 3:
			v.dtvccBuf = append(v.dtvccBuf, t.Data1, t.Data2)
		}
	}
}

// drainDTVCC parses the accumulated DTVCC packet and runs its service
// blocks through the corresponding CEA-708 service decoders.
func (v *captionVerifier) drainDTVCC() {
	if len(v.dtvccBuf) < 1 {
		return
	}
	packetSize := ccx.DTVCCPacketSize(v.dtvccBuf[0])
	if len(v.dtvccBuf) < packetSize {
		v.dtvccBuf = v.dtvccBuf[:0]
		return
	}
	for _, block := range ccx.ParseDTVCCPacket(v.dtvccBuf[:packetSize]) {
		svc := v.cea708[block.ServiceNum]
		if svc == nil {
			continue
		}
		if svc.ProcessBlock(block.Data) {
			if text := svc.DisplayText(); text != "" {
				v.cea708Lines++
				v.log.Debug("cea708 decoded line", "service", block.ServiceNum, "text", text)
			}
		}
	}
	v.dtvccBuf = v.dtvccBuf[:0]
}

func (v *captionVerifier) tripletsFor(payload []byte, kind caption.CarriageKind) []caption.Triplet {
	switch kind {
	case caption.Cea708CcData:
		return decodeTripletsRaw(payload)
	case caption.Cea708Cdp:
		res, err := caption.ReadCDP(payload)
		if err != nil {
			return nil
		}
		return res.Triplets
	default:
		return nil
	}
}

func decodeTripletsRaw(payload []byte) []caption.Triplet {
	if len(payload)%3 != 0 {
		return nil
	}
	out := make([]caption.Triplet, 0, len(payload)/3)
	for i := 0; i+3 <= len(payload); i += 3 {
		out = append(out, caption.Triplet{Header: payload[i], Data1: payload[i+1], Data2: payload[i+2]})
	}
	return out
}

// report flushes any partially accumulated DTVCC packet and prints the
// decode totals.
func (v *captionVerifier) report() {
	v.drainDTVCC()
	v.log.Info("verify summary", "cea608_lines", v.cea608Lines, "cea708_lines", v.cea708Lines)
}
