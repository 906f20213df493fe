package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	pcm := []byte{0x00, 0x00, 0x01, 0x00, 0xff, 0x7f, 0x00, 0x80}

	require.NoError(t, WriteWAV(path, pcm))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint16(NumChannels), dec.NumChans)
	assert.Equal(t, uint32(SampleRate), dec.SampleRate)
	assert.Equal(t, uint16(BitDepth), dec.BitDepth)
	assert.Equal(t, []int{0, 1, 32767, -32768}, buf.Data)
}

func TestWriteWAVHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.wav")
	require.NoError(t, WriteWAV(path, []byte{0x01, 0x00}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestWriteWAVCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.wav")
	require.NoError(t, WriteWAV(path, []byte{0x01, 0x00}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestWriteWAVDropsTrailingOddByte(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.wav")
	require.NoError(t, WriteWAV(path, []byte{0x01, 0x00, 0x7f}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, buf.Data)
}
