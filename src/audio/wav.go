package audio

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mitchellh/go-homedir"
)

// expandPath resolves a leading ~ and environment variables.
func expandPath(path string) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return os.ExpandEnv(p), nil
}

// ReadWav decodes the first channel of a PCM WAV file into samples in
// [-1, 1] and returns them with the file's sample rate.
func ReadWav(path string) ([]float64, int, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, 0, err
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		return nil, 0, fmt.Errorf("unknown bit depth for WAV file: %s", path)
	}
	nchannels := buf.Format.NumChannels
	if nchannels < 1 {
		nchannels = 1
	}
	factor := math.Pow(2, float64(bitDepth-1))
	samples := make([]float64, len(buf.Data)/nchannels)
	for i := range samples {
		samples[i] = float64(buf.Data[i*nchannels]) / factor
	}
	return samples, buf.Format.SampleRate, nil
}

// WriteWav encodes samples as a 16-bit mono WAV file, clipping to [-1, 1].
func WriteWav(path string, samples []float64, sampleRate int) error {
	path, err := expandPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, value := range samples {
		intBuf.Data[i] = int(clip(value) * 32767)
	}
	if err := enc.Write(intBuf); err != nil {
		return err
	}
	return enc.Close()
}

func clip(value float64) float64 {
	if value > 1 {
		return 1
	}
	if value < -1 {
		return -1
	}
	return value
}
