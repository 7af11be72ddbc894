package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-chanfilter/dsp/spectrum"
	"github.com/cwbudde/algo-chanfilter/internal/testutil"
)

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	in := testutil.SinePCM(1000, 8000, 12000, 800)
	in[0], in[1] = 32767, -32768

	require.NoError(t, writeWAV(path, in))

	out, err := readWAV(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadWAV_FileNotFound(t *testing.T) {
	_, err := readWAV("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestReadWAV_InvalidWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := readWAV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestReadWAV_RejectsWidebandStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.wav")

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 44100, 16, 2, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           make([]int, 64),
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	_, err = readWAV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 8000 Hz mono 16-bit")
}

func TestRun_NotchRemovesTone(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")

	require.NoError(t, writeWAV(inPath, testutil.SinePCM(2600, 8000, 8000, 8000)))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-notch", "2600", "-bw", "10", inPath, outPath}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out, err := readWAV(outPath)
	require.NoError(t, err)
	require.Len(t, out, 8000)

	inDB, err := spectrum.ToneLevelDB(testutil.SinePCM(2600, 8000, 8000, 8000)[4000:], 2600, 8000)
	require.NoError(t, err)
	outDB, err := spectrum.ToneLevelDB(out[4000:], 2600, 8000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, inDB-outDB, 20.0)

	assert.Contains(t, stdout.String(), "8000 samples in 50 frames of 20ms")
	assert.Contains(t, stdout.String(), "detected in 50 of 50 frames")
	assert.Contains(t, stdout.String(), "0 clipped samples")
}

func TestRun_DirectionMismatchPassesAudio(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")

	in := testutil.NoisePCM(7, 4000, 1600)
	require.NoError(t, writeWAV(inPath, in))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-resonance", "1000", "-res-dir", "rx", "-direction", "sent", inPath, outPath}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out, err := readWAV(outPath)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.NotContains(t, stdout.String(), "Tone at")
}

func TestRun_Response(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-response", "-notch", "2600", "-bw", "10"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "Magnitude [dB]")
	assert.Contains(t, stdout.String(), "2600.0 (notch)")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no filter", []string{"in.wav", "out.wav"}},
		{"missing output", []string{"-notch", "2600", "in.wav"}},
		{"bad direction", []string{"-notch", "2600", "-direction", "up", "in.wav", "out.wav"}},
		{"bad notch direction", []string{"-response", "-notch", "2600", "-notch-dir", "up"}},
		{"notch above nyquist", []string{"-response", "-notch", "4500"}},
		{"unknown flag", []string{"-loud"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(tc.args, &stdout, &stderr))
		})
	}
}

func TestParseFrameDirection(t *testing.T) {
	for _, s := range []string{"sent", "TX", " sent "} {
		_, err := parseFrameDirection(s)
		assert.NoError(t, err, s)
	}

	_, err := parseFrameDirection("sideways")
	assert.Error(t, err)
}
