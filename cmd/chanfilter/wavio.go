package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
)

const (
	bitsPerSample = 16
	monoChannels  = 1
	wavFormatPCM  = 1
)

// readWAV decodes an 8 kHz mono 16-bit WAV file.
func readWAV(path string) ([]int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if format.SampleRate != core.SampleRate || format.NumChannels != monoChannels || int(decoder.BitDepth) != bitsPerSample {
		return nil, fmt.Errorf("%s: %d Hz, %d channels, %d-bit; want %d Hz mono %d-bit",
			path, format.SampleRate, format.NumChannels, decoder.BitDepth, core.SampleRate, bitsPerSample)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = core.SaturateInt16(float64(v))
	}

	return samples, nil
}

// writeWAV encodes samples as an 8 kHz mono 16-bit WAV file.
func writeWAV(path string, samples []int16) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(f, core.SampleRate, bitsPerSample, monoChannels, wavFormatPCM)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: monoChannels, SampleRate: core.SampleRate},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}

	return nil
}
