package speech

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Effect names a short synthesized sound.
type Effect string

const (
	EffectPop   Effect = "pop"
	EffectError Effect = "error"
	EffectWin   Effect = "win"
	EffectMagic Effect = "magic"
)

// Effects lists every effect in a stable order.
var Effects = []Effect{EffectPop, EffectError, EffectWin, EffectMagic}

type waveform func(phase float64) float64

func sine(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4*math.Abs(p-0.5) - 1
}

// voice is one oscillator with a frequency and gain envelope over time.
type voice struct {
	wave waveform
	freq func(t float64) float64
	gain func(t float64) float64
	stop float64
}

// Render synthesizes e as 16-bit mono PCM at sampleRate.
func Render(e Effect, sampleRate int) ([]byte, error) {
	voices, length, err := effectVoices(e)
	if err != nil {
		return nil, err
	}
	return mix(voices, length, sampleRate), nil
}

func effectVoices(e Effect) ([]voice, float64, error) {
	switch e {
	case EffectPop:
		return []voice{{
			wave: sine,
			freq: expRamp(600, 1000, 0.1),
			gain: expRamp(0.1, 0.01, 0.1),
			stop: 0.15,
		}}, 0.15, nil

	case EffectError:
		return []voice{{
			wave: triangle,
			freq: linRamp(150, 100, 0.3),
			gain: linRamp(0.2, 0, 0.3),
			stop: 0.3,
		}}, 0.3, nil

	case EffectWin:
		notes := []float64{261.63, 329.63, 392.00, 523.25}
		vs := make([]voice, len(notes))
		for i, f := range notes {
			vs[i] = voice{
				wave: sine,
				freq: constant(f),
				gain: attackDecay(0.1, 0.1+float64(i)*0.05, 0.001, 1.5),
				stop: 1.5,
			}
		}
		return vs, 1.5, nil

	case EffectMagic:
		// Rising sparkle: a fast sweep with a staggered fifth above it.
		return []voice{
			{wave: sine, freq: expRamp(523.25, 1567.98, 0.6), gain: attackDecay(0.08, 0.05, 0.001, 0.8), stop: 0.8},
			{wave: sine, freq: expRamp(783.99, 2349.32, 0.6), gain: delayed(0.1, attackDecay(0.05, 0.05, 0.001, 0.7)), stop: 0.8},
		}, 0.8, nil
	}
	return nil, 0, fmt.Errorf("unknown effect %q", e)
}

func mix(voices []voice, length float64, sampleRate int) []byte {
	n := int(length * float64(sampleRate))
	pcm := make([]byte, 2*n)
	phases := make([]float64, len(voices))
	dt := 1 / float64(sampleRate)

	for i := range n {
		t := float64(i) * dt
		var s float64
		for v := range voices {
			vc := voices[v]
			if t >= vc.stop {
				continue
			}
			s += vc.wave(phases[v]) * vc.gain(t)
			phases[v] += vc.freq(t) * dt
		}
		s = math.Max(-1, math.Min(1, s))
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(int16(s*math.MaxInt16)))
	}
	return pcm
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

// linRamp moves linearly from a to b over d seconds, then holds b.
func linRamp(a, b, d float64) func(float64) float64 {
	return func(t float64) float64 {
		if t >= d {
			return b
		}
		return a + (b-a)*t/d
	}
}

// expRamp moves exponentially from a to b over d seconds, then holds b.
// Both ends must be positive.
func expRamp(a, b, d float64) func(float64) float64 {
	return func(t float64) float64 {
		if t >= d {
			return b
		}
		return a * math.Pow(b/a, t/d)
	}
}

// attackDecay rises linearly from 0 to peak by attack, then decays
// exponentially to floor at end.
func attackDecay(peak, attack, floor, end float64) func(float64) float64 {
	decay := expRamp(peak, floor, end-attack)
	return func(t float64) float64 {
		if t < attack {
			return peak * t / attack
		}
		return decay(t - attack)
	}
}

func delayed(by float64, g func(float64) float64) func(float64) float64 {
	return func(t float64) float64 {
		if t < by {
			return 0
		}
		return g(t - by)
	}
}
