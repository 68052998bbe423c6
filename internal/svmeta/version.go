package svmeta

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic version triple. Components that are missing or do
// not parse as non-negative integers are 0.
type Version [3]int

func ParseVersion(s string) Version {
	var v Version
	parts := strings.Split(strings.TrimSpace(s), ".")
	for i := 0; i < len(v) && i < len(parts); i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 {
			continue
		}
		v[i] = n
	}
	return v
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	for i := range v {
		switch {
		case v[i] < o[i]:
			return -1
		case v[i] > o[i]:
			return 1
		}
	}
	return 0
}

func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}
