package logslice

// DateKeyLen is the width of the leading date token (YYYY-MM-DD) that every
// line is expected to start with. The token is used purely as a lexical
// sort key; no calendar validation is applied to file contents.
const DateKeyLen = 10

// ValidDate reports whether s matches the YYYY-MM-DD lexical pattern:
// 10 ASCII bytes, digits everywhere except hyphens at positions 4 and 7.
// It deliberately does not check calendar validity (month/day ranges);
// comparison against file contents is lexical either way.
func ValidDate(s string) bool {
	if len(s) != DateKeyLen {
		return false
	}
	for i := 0; i < DateKeyLen; i++ {
		if i == 4 || i == 7 {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// dateKey returns the comparison key of a line: its first DateKeyLen bytes,
// or the whole line if it is shorter. A short line compares less than any
// date sharing its prefix, which keeps the search ordering consistent.
func dateKey(line []byte) []byte {
	if len(line) > DateKeyLen {
		return line[:DateKeyLen]
	}
	return line
}
