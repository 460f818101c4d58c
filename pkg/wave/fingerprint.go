package wave

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit hash of the validated wave parameters in
// evaluation order. Two sets with equal fingerprints produce the same surface.
func (s *Set) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [4]byte
	put := func(f float32) {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
		_, _ = d.Write(buf[:])
	}
	for i := range s.waves {
		w := &s.waves[i]
		put(w.Amplitude)
		put(w.Wavelength)
		put(w.Speed)
		put(w.Direction.X)
		put(w.Direction.Y)
		put(w.Steepness)
	}
	return d.Sum64()
}
