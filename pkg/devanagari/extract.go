package devanagari

import (
	"regexp"
	"strconv"
)

var numberSuffix = regexp.MustCompile(`_(\d+)`)

// ExtractNumber returns the last "_<digits>" group of a label as an int,
// e.g. 12 for "character_12_thaa" and 7 for "digit_7". It returns -1 when
// the label has no such group.
func ExtractNumber(label string) int {
	matches := numberSuffix.FindAllStringSubmatch(label, -1)
	if len(matches) == 0 {
		return -1
	}

	n, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return -1
	}
	return n
}
