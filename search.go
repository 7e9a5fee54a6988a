package logslice

import (
	"bytes"
	"iter"
)

// FirstOccurrence binary-searches data for the first line whose date key
// equals date and returns that line's start offset. found is false when no
// line matches. data must be sorted non-decreasingly by date key; this is
// a precondition, not something the search can detect.
//
// Each probe midpoint is snapped to its enclosing line before comparison.
// A probe line that fails to decode is treated as greater than the target
// so the search narrows left, away from the corruption: a malformed line
// near the probe must not steer the search past valid matching data. The
// decode failure itself is swallowed here; only the extraction phase
// surfaces decode errors.
func FirstOccurrence(data []byte, date string) (offset int, found bool) {
	target := []byte(date)
	left, right := 0, len(data)
	first := -1

	for left < right {
		mid := left + (right-left)/2

		line, err := LineAt(data, mid)
		if err != nil {
			right = mid
			continue
		}

		switch bytes.Compare(dateKey(line), target) {
		case 0:
			// Keep narrowing left to converge on the first match.
			first = mid
			right = mid
		case -1:
			left = mid + 1
		default:
			right = mid
		}
	}

	if first < 0 {
		return 0, false
	}
	start, _ := lineBounds(data, first)
	return start, true
}

// ScanForward returns a lazy sequence of the lines starting at start whose
// date key equals date, in file order. start must be the start offset of a
// line known to match, normally the result of FirstOccurrence.
//
// The sequence ends at the first line whose date key differs or at the end
// of data; neither is an error. A line that fails to decode yields a
// *DecodeError as the final element: lines yielded before it stand, and
// the caller decides what to do with the partial result. The sequence is
// single-use and not restartable.
func ScanForward(data []byte, start int, date string) iter.Seq2[[]byte, error] {
	target := []byte(date)
	return func(yield func([]byte, error) bool) {
		pos := start
		for pos < len(data) {
			line, err := LineAt(data, pos)
			if err != nil {
				yield(nil, err)
				return
			}
			if !bytes.HasPrefix(line, target) {
				return
			}
			if !yield(line, nil) {
				return
			}
			// Skip past the terminator to the next line start.
			pos += len(line) + 1
		}
	}
}
