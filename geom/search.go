package geom

// Order is the result of probing one element of a sorted sequence against an
// implicit target.
type Order uint8

const (
	// Match means the element is (part of) the target.
	Match Order = iota
	// ContinueLeft means the target lies before the element.
	ContinueLeft
	// ContinueRight means the target lies after the element.
	ContinueRight
)

func (o Order) String() string {
	switch o {
	case Match:
		return "match"
	case ContinueLeft:
		return "continue left"
	case ContinueRight:
		return "continue right"
	default:
		return "unknown"
	}
}

// SearchFunc binary searches the indices [0,n). The comparison must
// partition the indices into at most three contiguous zones: ContinueRight,
// then Match, then ContinueLeft. It returns the index of some matching element, or the
// insertion point of the target and false when nothing matches.
func SearchFunc(n int, cmp func(i int) Order) (index int, matched bool) {
	return searchBetween(0, n, cmp)
}

func searchBetween(lo, hi int, cmp func(i int) Order) (int, bool) {
	hi--
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch cmp(mid) {
		case Match:
			return mid, true
		case ContinueLeft:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return lo, false
}

// BinarySearch is SearchFunc over the elements of s.
func BinarySearch[S ~[]E, E any](s S, cmp func(E) Order) (index int, matched bool) {
	return SearchFunc(len(s), func(i int) Order { return cmp(s[i]) })
}

// IndexRangeFunc returns the half-open range [lo,hi) of indices in [0,n)
// whose every element compares as Match. ok is false when no element matches.
//
// The comparison must be monotonic as described on SearchFunc. One that
// reports ContinueLeft immediately before a Match (or ContinueRight
// immediately after one) violates that contract and causes a panic.
func IndexRangeFunc(n int, cmp func(i int) Order) (lo, hi int, ok bool) {
	left, found := searchBetween(0, n, func(i int) Order {
		o := cmp(i)
		if o != Match || i == 0 {
			return o
		}
		switch cmp(i - 1) {
		case Match:
			return ContinueLeft
		case ContinueLeft:
			panic("geom: comparison is not monotonic")
		}
		return Match
	})
	if !found {
		return 0, 0, false
	}
	right, _ := searchBetween(left, n, func(i int) Order {
		o := cmp(i)
		if o != Match || i == n-1 {
			return o
		}
		switch cmp(i + 1) {
		case Match:
			return ContinueRight
		case ContinueRight:
			panic("geom: comparison is not monotonic")
		}
		return Match
	})
	return left, right + 1, true
}

// IndexRange is IndexRangeFunc over the elements of s.
func IndexRange[S ~[]E, E any](s S, cmp func(E) Order) (lo, hi int, ok bool) {
	return IndexRangeFunc(len(s), func(i int) Order { return cmp(s[i]) })
}

// InsertionIndex returns the position at which e would be inserted into s,
// which must be sorted by the strict order less. If s holds an element
// equivalent to e, the index of one such element is returned.
func InsertionIndex[S ~[]E, E any](s S, e E, less func(a, b E) bool) int {
	i, _ := BinarySearch(s, func(mid E) Order {
		switch {
		case less(e, mid):
			return ContinueLeft
		case less(mid, e):
			return ContinueRight
		default:
			return Match
		}
	})
	return i
}
