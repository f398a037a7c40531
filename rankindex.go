package marisa

// rankIndex is one 96-bit rank-index record covering one 512-bit large
// block of a bitVector. abs holds the absolute number of 1-bits before
// the block. rel1..rel7 hold the number of 1-bits before each of the
// seven non-initial 64-bit small blocks within the large block,
// relative to abs. The seven values are packed 7/8/8/9/9/9/9 bits into
// relLo/relHi; this layout must not be rounded to byte alignment, it
// is part of the on-disk format.
type rankIndex struct {
	abs   uint32
	relLo uint32
	relHi uint32
}

const (
	rel1Bits = 7
	rel2Bits = 8
	rel3Bits = 8
	rel4Bits = 9
	rel5Bits = 9
	rel6Bits = 9
	rel7Bits = 9

	rel1Mask = (1 << rel1Bits) - 1
	rel2Mask = (1 << rel2Bits) - 1
	rel3Mask = (1 << rel3Bits) - 1
	rel4Mask = (1 << rel4Bits) - 1
	rel5Mask = (1 << rel5Bits) - 1
	rel6Mask = (1 << rel6Bits) - 1
	rel7Mask = (1 << rel7Bits) - 1

	rel2Shift = rel1Bits
	rel3Shift = rel2Shift + rel2Bits
	rel4Shift = rel3Shift + rel3Bits
	rel6Shift = rel5Bits
	rel7Shift = rel6Shift + rel6Bits
)

// rel returns the relative 1-count for sub-block sub (0..7). Sub-block
// 0 is the start of the large block itself, whose relative count is
// always 0 by definition.
func (r rankIndex) rel(sub int) uint32 {
	switch sub {
	case 0:
		return 0
	case 1:
		return r.relLo & rel1Mask
	case 2:
		return (r.relLo >> rel2Shift) & rel2Mask
	case 3:
		return (r.relLo >> rel3Shift) & rel3Mask
	case 4:
		return (r.relLo >> rel4Shift) & rel4Mask
	case 5:
		return r.relHi & rel5Mask
	case 6:
		return (r.relHi >> rel6Shift) & rel6Mask
	case 7:
		return (r.relHi >> rel7Shift) & rel7Mask
	default:
		panic("marisa: rank index sub-block out of range")
	}
}

func (r *rankIndex) setRel(sub int, v uint32) {
	switch sub {
	case 1:
		r.relLo = (r.relLo &^ rel1Mask) | (v & rel1Mask)
	case 2:
		r.relLo = (r.relLo &^ (rel2Mask << rel2Shift)) | ((v & rel2Mask) << rel2Shift)
	case 3:
		r.relLo = (r.relLo &^ (rel3Mask << rel3Shift)) | ((v & rel3Mask) << rel3Shift)
	case 4:
		r.relLo = (r.relLo &^ (rel4Mask << rel4Shift)) | ((v & rel4Mask) << rel4Shift)
	case 5:
		r.relHi = (r.relHi &^ rel5Mask) | (v & rel5Mask)
	case 6:
		r.relHi = (r.relHi &^ (rel6Mask << rel6Shift)) | ((v & rel6Mask) << rel6Shift)
	case 7:
		r.relHi = (r.relHi &^ (rel7Mask << rel7Shift)) | ((v & rel7Mask) << rel7Shift)
	default:
		panic("marisa: rank index sub-block out of range")
	}
}
