package platform

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"focustimer/internal/core/model"
)

const sampleRate = 22050

type partial struct {
	frequency float64
	amplitude float64
}

type note struct {
	partials []partial
	length   time.Duration
	decay    float64
	square   bool
}

var soundNotes = map[model.Sound][]note{
	model.SoundBell: {
		{partials: []partial{{830, 1}, {1660, 0.5}, {2490, 0.25}, {3320, 0.12}}, length: 1200 * time.Millisecond, decay: 3.5},
	},
	model.SoundChime: {
		{partials: []partial{{1046.5, 1}, {2093, 0.3}}, length: 400 * time.Millisecond, decay: 6},
		{partials: []partial{{1318.5, 1}, {2637, 0.3}}, length: 700 * time.Millisecond, decay: 4},
	},
	model.SoundBeep: {
		{partials: []partial{{1000, 1}}, length: 150 * time.Millisecond, square: true},
	},
}

const repeatGap = 250 * time.Millisecond

// RenderWAV synthesises sound as 16-bit mono PCM, repeated count times at
// volume percent, and wraps it in a WAV container.
func RenderWAV(sound model.Sound, volume, count int) []byte {
	if !sound.Valid() {
		sound = model.SoundBell
	}
	if count < 1 {
		count = 1
	}
	gain := float64(volume) / 100
	if gain < 0 {
		gain = 0
	}
	if gain > 1 {
		gain = 1
	}

	var samples []int16
	for repeat := 0; repeat < count; repeat++ {
		if repeat > 0 {
			samples = append(samples, silence(repeatGap)...)
		}
		for _, n := range soundNotes[sound] {
			samples = append(samples, n.render(gain)...)
		}
	}
	return encodeWAV(samples)
}

func (n note) render(gain float64) []int16 {
	total := sampleCount(n.length)
	var norm float64
	for _, p := range n.partials {
		norm += p.amplitude
	}

	samples := make([]int16, total)
	for i := range samples {
		t := float64(i) / sampleRate
		var value float64
		for _, p := range n.partials {
			wave := math.Sin(2 * math.Pi * p.frequency * t)
			if n.square {
				wave = math.Copysign(0.6, wave)
			}
			value += p.amplitude * wave
		}
		value /= norm
		if n.decay > 0 {
			value *= math.Exp(-n.decay * t)
		}
		// short fade-in and fade-out avoid clicks
		value *= envelope(i, total)
		samples[i] = int16(value * gain * math.MaxInt16 * 0.8)
	}
	return samples
}

func envelope(i, total int) float64 {
	ramp := sampleRate / 200
	if i < ramp {
		return float64(i) / float64(ramp)
	}
	if total-i < ramp {
		return float64(total-i) / float64(ramp)
	}
	return 1
}

func silence(length time.Duration) []int16 {
	return make([]int16, sampleCount(length))
}

func sampleCount(length time.Duration) int {
	return int(length.Seconds() * sampleRate)
}

func encodeWAV(samples []int16) []byte {
	dataSize := uint32(len(samples) * 2)
	var buf bytes.Buffer
	buf.Grow(44 + int(dataSize))

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}
