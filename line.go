package logslice

import "unicode/utf8"

// lineBounds resolves the full line containing pos within data, where a
// line is a maximal span free of '\n'. pos may be any offset in
// [0, len(data)]: the scan walks backward to the byte after the previous
// terminator (or offset 0) and forward to the next terminator (or end of
// data). Cost is linear in the line length, not the file size.
//
// A pos that lands exactly on a terminator resolves to the line ending at
// that terminator, matching the backward/forward scan semantics. pos ==
// len(data) resolves the final line, so a trailing line without a newline
// is still addressable.
func lineBounds(data []byte, pos int) (start, end int) {
	start = pos
	for start > 0 && data[start-1] != '\n' {
		start--
	}
	end = pos
	for end < len(data) && data[end] != '\n' {
		end++
	}
	return start, end
}

// LineAt returns the content of the line containing pos. The returned
// slice aliases data and is valid only as long as data is. A line that is
// not valid UTF-8 yields a *DecodeError carrying the line's start offset.
func LineAt(data []byte, pos int) ([]byte, error) {
	start, end := lineBounds(data, pos)
	line := data[start:end]
	if !utf8.Valid(line) {
		return nil, &DecodeError{Offset: start}
	}
	return line, nil
}
