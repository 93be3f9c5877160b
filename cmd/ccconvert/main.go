// Command ccconvert converts a recorded stream of closed-caption frames
// between CEA-608 raw, S334-1A, CEA-708 cc_data, and CDP carriages.
package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zsiec/ccconvert/internal/caption"
)

// frame is one length-prefixed record in ccconvert's on-disk carriage
// stream format: a 4-byte big-endian payload length followed by that
// many bytes, carrying one frame's worth of caption data in whatever
// carriage the stream was written for.
type frame struct {
	payload []byte
}

func readFrame(r *bufio.Reader) (frame, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return frame{}, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return frame{}, fmt.Errorf("read frame payload: %w", err)
	}
	return frame{payload: payload}, nil
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

func parseKind(s string) (caption.CarriageKind, error) {
	switch s {
	case "cea608_raw":
		return caption.Cea608Raw, nil
	case "cea608_s334_1a":
		return caption.Cea608S334_1A, nil
	case "cea708_cc_data":
		return caption.Cea708CcData, nil
	case "cea708_cdp":
		return caption.Cea708Cdp, nil
	default:
		return 0, fmt.Errorf("unknown carriage kind %q (want cea608_raw, cea608_s334_1a, cea708_cc_data, or cea708_cdp)", s)
	}
}

func main() {
	var (
		inPath    = flag.String("in", "", "input caption frame stream")
		outPath   = flag.String("out", "", "output caption frame stream")
		inKindS   = flag.String("in-kind", "cea708_cc_data", "input carriage kind")
		outKindS  = flag.String("out-kind", "cea708_cdp", "output carriage kind")
		inFpsN    = flag.Uint("in-fps-num", 30, "input frame rate numerator")
		inFpsD    = flag.Uint("in-fps-den", 1, "input frame rate denominator")
		outFpsN   = flag.Uint("out-fps-num", 30, "output frame rate numerator")
		outFpsD   = flag.Uint("out-fps-den", 1, "output frame rate denominator")
		verify    = flag.Bool("verify", false, "decode converted output with ccx and report any caption text found")
	)
	flag.Parse()

	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if *inPath == "" || *outPath == "" {
		log.Error("both -in and -out are required")
		os.Exit(1)
	}

	inKind, err := parseKind(*inKindS)
	if err != nil {
		log.Error("bad -in-kind", "error", err)
		os.Exit(1)
	}
	outKind, err := parseKind(*outKindS)
	if err != nil {
		log.Error("bad -out-kind", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, log, runConfig{
		inPath: *inPath, outPath: *outPath,
		inKind: inKind, outKind: outKind,
		inFpsN: uint32(*inFpsN), inFpsD: uint32(*inFpsD),
		outFpsN: uint32(*outFpsN), outFpsD: uint32(*outFpsD),
		verify: *verify,
	}); err != nil {
		log.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}

type runConfig struct {
	inPath, outPath   string
	inKind, outKind   caption.CarriageKind
	inFpsN, inFpsD    uint32
	outFpsN, outFpsD  uint32
	verify            bool
}

// run wires the three pipeline stages — read, convert, write — as
// concurrent goroutines coordinated by an errgroup, in the same shape
// cmd/prism's main loop coordinates its ingest/distribution goroutines:
// any stage's error cancels the shared context and unwinds the rest.
func run(ctx context.Context, log *slog.Logger, cfg runConfig) error {
	in, err := os.Open(cfg.inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(cfg.outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	conv := caption.NewConverter(log)
	if err := conv.SetCaps(caption.Caps{
		InKind: cfg.inKind, InFpsN: cfg.inFpsN, InFpsD: cfg.inFpsD,
		OutKind: cfg.outKind, OutFpsN: cfg.outFpsN, OutFpsD: cfg.outFpsD,
	}); err != nil {
		return fmt.Errorf("set caps: %w", err)
	}
	conv.Start()

	frames := make(chan frame, 16)
	outputs := make(chan []byte, 16)

	var verifier *captionVerifier
	if cfg.verify {
		verifier = newCaptionVerifier(log)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(frames)
		r := bufio.NewReader(in)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			f, err := readFrame(r)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("read: %w", err)
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		defer close(outputs)
		count := 0
		for f := range frames {
			converted, _, err := conv.Convert(f.payload, nil)
			if err != nil {
				return fmt.Errorf("convert frame %d: %w", count, err)
			}
			count++
			if len(converted) > 0 {
				select {
				case outputs <- converted:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			for {
				polled, _, ok, err := conv.Poll()
				if err != nil {
					return fmt.Errorf("poll after frame %d: %w", count, err)
				}
				if !ok {
					break
				}
				// Synthesized frames have no input of their own; their
				// transport metadata comes from the last real input.
				log.Debug("polled frame inherits metadata",
					"source_bytes", len(conv.PreviousPayload()))
				select {
				case outputs <- polled:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		metaSource := conv.PreviousPayload()
		drained, _, err := conv.EndOfStream()
		if err != nil {
			return fmt.Errorf("end of stream: %w", err)
		}
		for _, d := range drained {
			log.Debug("drained frame inherits metadata", "source_bytes", len(metaSource))
			select {
			case outputs <- d:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		w := bufio.NewWriter(out)
		count := 0
		for payload := range outputs {
			if err := writeFrame(w, payload); err != nil {
				return fmt.Errorf("write: %w", err)
			}
			if verifier != nil {
				verifier.observe(payload, cfg.outKind)
			}
			count++
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
		log.Info("conversion complete", "output_frames", count)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if verifier != nil {
		verifier.report()
	}
	return nil
}
