package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
	"github.com/cwbudde/algo-chanfilter/measure/response"
	"github.com/cwbudde/algo-chanfilter/telephony/audiofilter"
	"github.com/cwbudde/algo-chanfilter/telephony/channel"
)

const (
	impulseAmplitude = 8192
	responseStep     = 250
)

// channelProcessor plays PCM through one direction of a channel in frames.
type channelProcessor struct {
	ch        *channel.Memory
	dir       channel.FrameDirection
	frameSize int
}

func (p channelProcessor) ProcessBlock(samples []int16) {
	for off := 0; off < len(samples); off += p.frameSize {
		frame := samples[off:min(off+p.frameSize, len(samples))]
		if p.dir == channel.Received {
			_ = p.ch.Receive(frame)
		} else {
			_ = p.ch.Send(frame)
		}
	}
}

// printResponse measures the impulse response of the filters o selects on a
// scratch channel and prints a magnitude table.
func printResponse(w io.Writer, m *audiofilter.Manager, o options, dir channel.FrameDirection) error {
	ch := channel.NewMemory("response")
	defer ch.Hangup()

	if err := configure(m, ch, o); err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(core.WithFrameSize(o.frameSize))
	p := channelProcessor{ch: ch, dir: dir, frameSize: cfg.FrameSize}

	r, err := response.FromPCM(p, impulseAmplitude, response.DefaultFFTSize, core.SampleRate)
	if err != nil {
		return fmt.Errorf("measure response: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tMagnitude [dB]\n")
	fmt.Fprintf(tw, "--------------\t--------------\n")

	for f := 0; f <= core.SampleRate/2; f += responseStep {
		fmt.Fprintf(tw, "%d\t%.2f\n", f, r.AtDB(float64(f)))
	}

	if o.notchFreq > 0 {
		fmt.Fprintf(tw, "%.1f (notch)\t%.2f\n", o.notchFreq, r.AtDB(o.notchFreq))
	}

	freq, db := r.Peak()
	fmt.Fprintf(tw, "%.1f (peak)\t%.2f\n", freq, db)

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
