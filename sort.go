package marisa

// sortable is implemented by the depth-indexable types the builder
// sorts: plain keys (forward byte order) and reversed entries (used
// for the innermost level's tail-building pass).
type sortable interface {
	// byteAt returns the byte at the given depth and true, or
	// (0, false) if depth is at or past the element's length.
	byteAt(depth int) (byte, bool)
	keyLength() int
}

const insertionSortThreshold = 16

func labelAt(s sortable, depth int) int {
	if b, ok := s.byteAt(depth); ok {
		return int(b)
	}
	return -1
}

func median3Label(a, b, c sortable, depth int) int {
	x, y, z := labelAt(a, depth), labelAt(b, depth), labelAt(c, depth)
	switch {
	case x < y:
		if y < z {
			return y
		} else if x < z {
			return z
		}
		return x
	case x < z:
		return x
	case y < z:
		return z
	default:
		return y
	}
}

func compareSortable(lhs, rhs sortable, depth int) int {
	i := depth
	for i < lhs.keyLength() {
		if i == rhs.keyLength() {
			return 1
		}
		lb, _ := lhs.byteAt(i)
		rb, _ := rhs.byteAt(i)
		if lb != rb {
			return int(lb) - int(rb)
		}
		i++
	}
	switch {
	case lhs.keyLength() == rhs.keyLength():
		return 0
	case lhs.keyLength() < rhs.keyLength():
		return -1
	default:
		return 1
	}
}

func insertionSortRange(data []sortable, depth int) {
	for i := 1; i < len(data); i++ {
		for j := i; j >= 1 && compareSortable(data[j-1], data[j], depth) > 0; j-- {
			data[j-1], data[j] = data[j], data[j-1]
		}
	}
}

// sortByDepth implements the depth-based three-way radix quicksort
// used to order a range of keys (or, at the innermost trie level,
// reverse-indexed entries) for LOUDS emission: median-of-three pivot
// selection on the byte at `depth`, falling back to insertion sort
// below insertionSortThreshold elements.
//
// The reference implementation's sort also returns a running count of
// unique prefixes computed alongside the partitioning; that counter
// undercounts whenever a partition of size 1 survives to become the
// active range at loop exit without passing through one of the
// explicit count += 1 branches (the single-element range is then
// never tallied). sortByDepth computes no such count and returns
// nothing; the builder does not use a unique-key count. Duplicate keys
// end up adjacent and share one terminal node.
func sortByDepth(data []sortable) {
	sortByDepthImpl(data, 0)
}

func sortByDepthImpl(data []sortable, depth int) {
	l, r := 0, len(data)

	for r-l > insertionSortThreshold {
		pl, pr := l, r
		pivotL, pivotR := l, r

		pivot := median3Label(data[l], data[l+(r-l)/2], data[r-1], depth)

		for {
			for pl < pr {
				label := labelAt(data[pl], depth)
				if label > pivot {
					break
				} else if label == pivot {
					data[pl], data[pivotL] = data[pivotL], data[pl]
					pivotL++
				}
				pl++
			}
			for pl < pr {
				pr--
				label := labelAt(data[pr], depth)
				if label < pivot {
					break
				} else if label == pivot {
					pivotR--
					data[pr], data[pivotR] = data[pivotR], data[pr]
				}
			}
			if pl >= pr {
				break
			}
			data[pl], data[pr] = data[pr], data[pl]
			pl++
		}

		for pivotL > l {
			pivotL--
			pl--
			data[pivotL], data[pl] = data[pl], data[pivotL]
		}
		for pivotR < r {
			data[pivotR], data[pr] = data[pr], data[pivotR]
			pivotR++
			pr++
		}

		if (pl-l) > (pr-pl) || (r-pr) > (pr-pl) {
			if pr-pl > 1 && pivot != -1 {
				sortByDepthImpl(data[pl:pr], depth+1)
			}
			if (pl - l) < (r - pr) {
				if pl-l > 1 {
					sortByDepthImpl(data[l:pl], depth)
				}
				l = pr
			} else {
				if r-pr > 1 {
					sortByDepthImpl(data[pr:r], depth)
				}
				r = pl
			}
		} else {
			if pl-l > 1 {
				sortByDepthImpl(data[l:pl], depth)
			}
			if r-pr > 1 {
				sortByDepthImpl(data[pr:r], depth)
			}

			l, r = pl, pr
			if pr-pl == 1 {
				l = r
			} else if pr-pl > 1 {
				if pivot == -1 {
					l = r
				} else {
					sortByDepthImpl(data[l:r], depth+1)
					l = r
				}
			}
		}
	}

	if r-l > 1 {
		insertionSortRange(data[l:r], depth)
	}
}
