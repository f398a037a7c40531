package marisa

import "math/bits"

// flatVector is a build-once, bit-packed array of uint32 values, each
// stored in the minimum number of bits needed to represent the
// largest value in the source slice. Values may straddle two adjacent
// 64-bit units.
type flatVector struct {
	units     []uint64
	valueSize uint32 // bits per value, 0..32
	mask      uint32
	size      int
}

func newFlatVector() *flatVector {
	return &flatVector{}
}

// Build packs src into the vector, computing value_size =
// ceil(log2(max(src)+1)), 0 if src is empty or entirely zero.
func (fv *flatVector) Build(src []uint32) {
	var max uint32
	for _, v := range src {
		if v > max {
			max = v
		}
	}

	valueSize := uint32(0)
	if max > 0 {
		valueSize = uint32(bits.Len32(max))
	}
	fv.valueSize = valueSize
	if valueSize == 32 {
		fv.mask = 0xFFFFFFFF
	} else {
		fv.mask = (uint32(1) << valueSize) - 1
	}
	fv.size = len(src)

	totalBits := uint64(valueSize) * uint64(len(src))
	numUnits := (totalBits + wordBits - 1) / wordBits
	fv.units = make([]uint64, numUnits)

	if valueSize == 0 {
		return
	}
	for i, v := range src {
		fv.set(i, v&fv.mask)
	}
}

func (fv *flatVector) set(i int, value uint32) {
	bitPos := uint64(i) * uint64(fv.valueSize)
	unitIdx := bitPos / wordBits
	bitOff := uint(bitPos % wordBits)

	fv.units[unitIdx] |= (uint64(value) << bitOff)
	if bitOff+uint(fv.valueSize) > wordBits {
		rem := bitOff + uint(fv.valueSize) - wordBits
		fv.units[unitIdx+1] |= uint64(value) >> (uint(fv.valueSize) - rem)
	}
}

// Get reads the i-th value.
func (fv *flatVector) Get(i int) uint32 {
	if fv.valueSize == 0 {
		return 0
	}
	bitPos := uint64(i) * uint64(fv.valueSize)
	unitIdx := bitPos / wordBits
	bitOff := uint(bitPos % wordBits)

	v := uint32((fv.units[unitIdx] >> bitOff) & uint64(fv.mask))
	if bitOff+uint(fv.valueSize) > wordBits {
		rem := bitOff + uint(fv.valueSize) - wordBits
		hi := fv.units[unitIdx+1] & ((uint64(1) << rem) - 1)
		v |= uint32(hi) << (uint(fv.valueSize) - rem)
	}
	return v
}

func (fv *flatVector) Size() int        { return fv.size }
func (fv *flatVector) ValueSize() uint32 { return fv.valueSize }
func (fv *flatVector) Empty() bool      { return fv.size == 0 }
