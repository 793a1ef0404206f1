package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const wavHeaderSize = 44

// EncodeWAV wraps 16-bit little-endian mono PCM in a RIFF/WAVE header.
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	var buf bytes.Buffer
	buf.Grow(wavHeaderSize + len(pcm))

	const (
		channels      = 1
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16)) // PCM chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // PCM format
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// WAVInfo describes a decoded WAV header.
type WAVInfo struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	DataSize      int
}

// ParseWAV reads the header of a canonical 44-byte-header WAV file.
func ParseWAV(data []byte) (WAVInfo, error) {
	if len(data) < wavHeaderSize {
		return WAVInfo{}, fmt.Errorf("wav too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return WAVInfo{}, fmt.Errorf("not a RIFF/WAVE file")
	}
	le := binary.LittleEndian
	return WAVInfo{
		Channels:      int(le.Uint16(data[22:24])),
		SampleRate:    int(le.Uint32(data[24:28])),
		BitsPerSample: int(le.Uint16(data[34:36])),
		DataSize:      int(le.Uint32(data[40:44])),
	}, nil
}
