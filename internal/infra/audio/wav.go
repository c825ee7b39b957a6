package audio

import (
	"bytes"
	"encoding/binary"
)

// EncodeWAV wraps 16-bit mono PCM samples in a RIFF/WAVE container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer

	dataSize := len(samples) * 2

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, int16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, int16(2))
	binary.Write(&buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// Endpointer decides when an utterance is over: after trailing silence once
// some minimum audio has been captured, or at a hard length cap.
type Endpointer struct {
	Threshold     int16
	SilenceFrames int
	MinFrames     int
	MaxFrames     int

	captured int
	silent   int
}

func NewEndpointer(sampleRate int, maxSeconds int) *Endpointer {
	return &Endpointer{
		Threshold:     500,
		SilenceFrames: sampleRate,
		MinFrames:     sampleRate,
		MaxFrames:     sampleRate * maxSeconds,
	}
}

// Feed accounts for one buffer of samples and reports whether capture should stop.
func (e *Endpointer) Feed(samples []int16) bool {
	e.captured += len(samples)

	if isSilent(samples, e.Threshold) {
		e.silent += len(samples)
	} else {
		e.silent = 0
	}

	if e.silent > e.SilenceFrames && e.captured > e.MinFrames {
		return true
	}
	return e.captured >= e.MaxFrames
}

func isSilent(samples []int16, threshold int16) bool {
	for _, s := range samples {
		if s > threshold || s < -threshold {
			return false
		}
	}
	return true
}
