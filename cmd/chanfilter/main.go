// Command chanfilter runs 8 kHz mono WAV audio through the channel notch and
// resonance filters, or prints their measured magnitude response.
//
// Usage:
//
//	chanfilter [flags] input.wav output.wav
//	chanfilter -response [flags]
//
// Examples:
//
//	chanfilter -notch 2600 -bw 10 trunk.wav clean.wav
//	chanfilter -resonance 3700 -direction received call.wav out.wav
//	chanfilter -response -notch 2600 -bw 10
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/design/pass"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/notch"
	"github.com/cwbudde/algo-chanfilter/stats/level"
	"github.com/cwbudde/algo-chanfilter/telephony/audiofilter"
	"github.com/cwbudde/algo-chanfilter/telephony/channel"
)

const minRequiredArgs = 2

var errUsage = errors.New("usage")

type options struct {
	notchFreq float64
	notchBW   float64
	notchDir  string
	resFreq   float64
	resDir    string
	q         float64
	threshold int64
	direction string
	frameSize int
	verbose   bool
	response  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var o options

	fs := flag.NewFlagSet("chanfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&o.notchFreq, "notch", 0, "notch center frequency in Hz (0 disables)")
	fs.Float64Var(&o.notchBW, "bw", 10, "notch bandwidth in Hz")
	fs.StringVar(&o.notchDir, "notch-dir", "both", "frames the notch filters: tx, rx or both")
	fs.Float64Var(&o.resFreq, "resonance", 0, "resonance low-pass cutoff in Hz (0 disables)")
	fs.StringVar(&o.resDir, "res-dir", "both", "frames the resonance filter processes: tx, rx or both")
	fs.Float64Var(&o.q, "q", pass.ResonantQ, "resonance factor of the low-pass prototype")
	fs.Int64Var(&o.threshold, "threshold", notch.DefaultThreshold, "tone detector threshold in mean absolute PCM units")
	fs.StringVar(&o.direction, "direction", "sent", "direction the file travels through the channel: sent or received")
	fs.IntVar(&o.frameSize, "frame", core.DefaultFrameSize, "samples per channel frame")
	fs.BoolVar(&o.verbose, "v", false, "verbose output")
	fs.BoolVar(&o.response, "response", false, "print the magnitude response of the configured filters and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: chanfilter [flags] input.wav output.wav\n")
		fmt.Fprintf(stderr, "       chanfilter -response [flags]\n\n")
		fmt.Fprintf(stderr, "Filters 8 kHz mono 16-bit WAV audio through a telephony channel.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  chanfilter -notch 2600 -bw 10 trunk.wav clean.wav\n")
		fmt.Fprintf(stderr, "  chanfilter -resonance 3700 -direction received call.wav out.wav\n")
		fmt.Fprintf(stderr, "  chanfilter -response -notch 2600 -bw 10\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}
		return err
	}

	if o.notchFreq <= 0 && o.resFreq <= 0 {
		fmt.Fprintf(stderr, "error: no filter selected, set -notch or -resonance\n\n")
		fs.Usage()
		return errUsage
	}

	dir, err := parseFrameDirection(o.direction)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, o.verbose)
	m := audiofilter.NewManager(
		audiofilter.WithLogger(logger),
		audiofilter.WithToneThreshold(o.threshold),
		audiofilter.WithResonanceQ(o.q),
	)

	if o.response {
		return printResponse(stdout, m, o, dir)
	}

	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return errUsage
	}

	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	samples, err := readWAV(inputPath)
	if err != nil {
		return err
	}

	ch := channel.NewMemory(filepath.Base(inputPath))
	defer ch.Hangup()

	if err := configure(m, ch, o); err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(core.WithFrameSize(o.frameSize))

	report, err := filterPCM(m, ch, samples, cfg.FrameSize, dir)
	if err != nil {
		return err
	}

	if err := writeWAV(outputPath, samples); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Fprintf(stdout, "  %d samples in %d frames of %v\n", len(samples), report.frames, cfg.FrameDuration())
	fmt.Fprintf(stdout, "  Level: %.1f dBFS -> %.1f dBFS RMS, %d clipped samples\n",
		report.in.RMSdBFS, report.out.RMSdBFS, report.out.Clipped)
	if o.notchFreq > 0 {
		fmt.Fprintf(stdout, "  Tone at %.0f Hz detected in %d of %d frames\n", o.notchFreq, report.toneFrames, report.frames)
	}

	return nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

func parseFrameDirection(s string) (channel.FrameDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sent", "tx":
		return channel.Sent, nil
	case "received", "rx":
		return channel.Received, nil
	default:
		return 0, fmt.Errorf("unknown direction %q, want sent or received", s)
	}
}

// configure installs the filters selected by o on ch.
func configure(m *audiofilter.Manager, ch channel.Channel, o options) error {
	if o.notchFreq > 0 {
		dir, err := audiofilter.ParseDirection(o.notchDir)
		if err != nil {
			return err
		}

		err = m.ConfigureNotch(ch, audiofilter.NotchConfig{
			Frequency: o.notchFreq,
			Bandwidth: o.notchBW,
			Direction: dir,
		})
		if err != nil {
			return fmt.Errorf("notch: %w", err)
		}
	}

	if o.resFreq > 0 {
		dir, err := audiofilter.ParseDirection(o.resDir)
		if err != nil {
			return err
		}

		err = m.ConfigureResonance(ch, audiofilter.ResonanceConfig{
			Frequency: o.resFreq,
			Direction: dir,
		})
		if err != nil {
			return fmt.Errorf("resonance: %w", err)
		}
	}

	return nil
}

type toneReport struct {
	frames     int
	toneFrames int
	in, out    level.Level
}

// filterPCM feeds samples through ch in place, frame by frame, counts the
// frames after which the notch detector reports a tone and meters the level
// on both sides of the channel.
func filterPCM(m *audiofilter.Manager, ch *channel.Memory, samples []int16, frameSize int, dir channel.FrameDirection) (toneReport, error) {
	var (
		report  toneReport
		in, out level.Meter
	)

	deliver := ch.Send
	if dir == channel.Received {
		deliver = ch.Receive
	}

	for off := 0; off < len(samples); off += frameSize {
		frame := samples[off:min(off+frameSize, len(samples))]

		in.Update(frame)
		if err := deliver(frame); err != nil {
			return report, fmt.Errorf("frame at sample %d: %w", off, err)
		}
		out.Update(frame)

		report.frames++
		if d, ok := m.NotchTone(ch); ok && d == notch.TonePresent {
			report.toneFrames++
		}
	}

	report.in, report.out = in.Result(), out.Result()

	return report, nil
}
