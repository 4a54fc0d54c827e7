// Package version gives tool version strings a total order.
//
// Versions follow the package tool's conventions: an optional "N!" epoch is
// compared first, then the release segments numerically, then pre-releases
// (a < b < rc), then ".postN" releases which sort after their release and
// finally ".devN" builds which sort before everything they suffix. Strings
// that do not parse sort before every parsed version and compare lexically
// among themselves.
package version

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

var (
	epochRE = regexp.MustCompile(`^(\d+)!`)
	devRE   = regexp.MustCompile(`[._-]?dev(\d*)$`)
	postRE  = regexp.MustCompile(`(?:[._-]?(?:post|rev|r)(\d*)|-(\d+))$`)
	preRE   = regexp.MustCompile(`^(a|alpha|b|beta|c|rc|pre|preview)[._-]?(\d*)$`)
)

// pre-release ranks; a release without pre-release sorts above all of them
const (
	rankDevOnly = -1
	rankAlpha   = 0
	rankBeta    = 1
	rankRC      = 2
	rankRelease = 3
)

// Comparable wraps a version string with its parsed form
type Comparable struct {
	raw    string
	parsed *goversion.Version // release and pre-release segments

	epoch int
	post  int // -1 when absent
	dev   int // -1 when absent
}

// Parse wraps s. It never fails: unparseable strings keep raw ordering.
func Parse(s string) Comparable {
	c := Comparable{raw: s, post: -1, dev: -1}

	rest := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		rest = rest[:i]
	}

	if m := epochRE.FindStringSubmatch(rest); m != nil {
		c.epoch = atoi(m[1])
		rest = rest[len(m[0]):]
	}
	if m := devRE.FindStringSubmatchIndex(rest); m != nil {
		c.dev = atoi(rest[m[2]:m[3]])
		rest = rest[:m[0]]
	}
	if m := postRE.FindStringSubmatchIndex(rest); m != nil {
		if m[2] >= 0 {
			c.post = atoi(rest[m[2]:m[3]])
		} else {
			c.post = atoi(rest[m[4]:m[5]])
		}
		rest = rest[:m[0]]
	}

	if v, err := goversion.NewVersion(rest); err == nil {
		c.parsed = v
	}
	return c
}

// String returns the original version string
func (c Comparable) String() string {
	return c.raw
}

// Valid reports whether the string parsed as a version
func (c Comparable) Valid() bool {
	return c.parsed != nil
}

// Compare returns -1, 0 or 1 as c is less than, equal to or greater than o
func (c Comparable) Compare(o Comparable) int {
	switch {
	case c.parsed != nil && o.parsed != nil:
	case c.parsed != nil:
		return 1
	case o.parsed != nil:
		return -1
	default:
		return strings.Compare(c.raw, o.raw)
	}

	if d := compareInt(c.epoch, o.epoch); d != 0 {
		return d
	}
	if d := compareSegments(c.parsed.Segments64(), o.parsed.Segments64()); d != 0 {
		return d
	}
	if d := c.comparePre(o); d != 0 {
		return d
	}
	if d := compareInt(c.post, o.post); d != 0 {
		return d
	}
	return compareInt(devKey(c.dev), devKey(o.dev))
}

// comparePre orders the pre-release part of two versions with equal releases
func (c Comparable) comparePre(o Comparable) int {
	cr, cn, cs := c.preKey()
	or, on, os := o.preKey()
	if d := compareInt(cr, or); d != 0 {
		return d
	}
	if d := compareInt(cn, on); d != 0 {
		return d
	}
	return strings.Compare(cs, os)
}

// preKey returns the rank, number and unrecognised text of the pre-release.
// A bare dev build ranks below every pre-release of its release.
func (c Comparable) preKey() (int, int, string) {
	pre := c.parsed.Prerelease()
	if pre == "" {
		if c.post < 0 && c.dev >= 0 {
			return rankDevOnly, 0, ""
		}
		return rankRelease, 0, ""
	}

	m := preRE.FindStringSubmatch(pre)
	if m == nil {
		return rankAlpha, -1, pre
	}
	rank := rankRC
	switch m[1] {
	case "a", "alpha":
		rank = rankAlpha
	case "b", "beta":
		rank = rankBeta
	}
	return rank, atoi(m[2]), ""
}

// Equal reports whether both versions denote the same release ("1.0" == "1.0.0")
func (c Comparable) Equal(o Comparable) bool {
	return c.Compare(o) == 0
}

// LessThan reports whether c sorts before o
func (c Comparable) LessThan(o Comparable) bool {
	return c.Compare(o) < 0
}

// GreaterThan reports whether c sorts after o
func (c Comparable) GreaterThan(o Comparable) bool {
	return c.Compare(o) > 0
}

// SortStrings sorts version strings ascending in place.
// Equal versions keep their original relative order.
func SortStrings(vs []string) {
	parsed := make([]Comparable, len(vs))
	for i, v := range vs {
		parsed[i] = Parse(v)
	}
	sort.Stable(byVersion{raw: vs, parsed: parsed})
}

type byVersion struct {
	raw    []string
	parsed []Comparable
}

func (b byVersion) Len() int           { return len(b.raw) }
func (b byVersion) Less(i, j int) bool { return b.parsed[i].LessThan(b.parsed[j]) }
func (b byVersion) Swap(i, j int) {
	b.raw[i], b.raw[j] = b.raw[j], b.raw[i]
	b.parsed[i], b.parsed[j] = b.parsed[j], b.parsed[i]
}

// compareSegments compares release segments, missing ones counting as zero
func compareSegments(a, b []int64) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var x, y int64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// devKey makes an absent dev marker sort above every dev build
func devKey(dev int) int {
	if dev < 0 {
		return math.MaxInt
	}
	return dev
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
