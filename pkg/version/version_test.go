package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "numeric segments", a: "1.10", b: "1.9", want: 1},
		{name: "padded equal", a: "1.0", b: "1.0.0", want: 0},
		{name: "pre-release before release", a: "1.0rc1", b: "1.0", want: -1},
		{name: "four segments", a: "1.2.3.4", b: "1.2.3", want: 1},
		{name: "calendar versions", a: "2019.10", b: "2020.1", want: -1},
		{name: "unparseable before parsed", a: "not-a-version!", b: "0.0.1", want: -1},
		{name: "unparseable lexical", a: "abc!", b: "abd!", want: -1},
		{name: "empty string", a: "", b: "0.1", want: -1},
		{name: "post release after release", a: "1.0.post1", b: "1.0", want: 1},
		{name: "post release before next release", a: "21.0.post1", b: "21.1", want: -1},
		{name: "post numbers", a: "1.0.post2", b: "1.0.post10", want: -1},
		{name: "dash post release", a: "1.0-1", b: "1.0", want: 1},
		{name: "dev before pre-release", a: "1.0.dev0", b: "1.0a1", want: -1},
		{name: "dev before release", a: "1.0.dev3", b: "1.0", want: -1},
		{name: "dev after previous release", a: "1.0.dev0", b: "0.9.post5", want: 1},
		{name: "alpha before beta", a: "1.0a2", b: "1.0b1", want: -1},
		{name: "beta before rc", a: "1.0b9", b: "1.0rc1", want: -1},
		{name: "pre-release numbers", a: "1.0rc2", b: "1.0rc10", want: -1},
		{name: "post of pre-release", a: "1.0rc1.post1", b: "1.0rc2", want: -1},
		{name: "dev of post release", a: "1.0.post1.dev0", b: "1.0.post1", want: -1},
		{name: "dev of post above release", a: "1.0.post1.dev0", b: "1.0", want: 1},
		{name: "epoch first", a: "1!0.5", b: "2.0", want: 1},
		{name: "explicit zero epoch", a: "0!1.0", b: "1.0", want: 0},
		{name: "local label ignored", a: "1.0+cuda", b: "1.0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := Parse(tt.a), Parse(tt.b)
			assert.Equal(t, tt.want, a.Compare(b))
			assert.Equal(t, -tt.want, b.Compare(a), "comparison must be antisymmetric")
		})
	}
}

func TestParseKeepsRawString(t *testing.T) {
	v := Parse("1.0")
	assert.Equal(t, "1.0", v.String())
	assert.True(t, v.Valid())
	assert.True(t, v.Equal(Parse("1.0.0")))

	assert.False(t, Parse("").Valid())

	post := Parse("1.0.post1")
	assert.Equal(t, "1.0.post1", post.String())
	assert.True(t, post.Valid())
	assert.True(t, Parse("1!2.0.dev1").Valid())
}

func TestSortStrings(t *testing.T) {
	vs := []string{"1.10", "1.2", "weird!", "1.0rc1", "1.0"}
	SortStrings(vs)
	assert.Equal(t, []string{"weird!", "1.0rc1", "1.0", "1.2", "1.10"}, vs)
}

func TestSortStringsReleaseSuffixes(t *testing.T) {
	vs := []string{"1.0.post1", "0.9", "1.0", "1.0.dev0", "1.0rc1", "1!0.1"}
	SortStrings(vs)
	assert.Equal(t, []string{"0.9", "1.0.dev0", "1.0rc1", "1.0", "1.0.post1", "1!0.1"}, vs)
}

func TestSortStringsStableOnTies(t *testing.T) {
	vs := []string{"1.0.0", "0.5", "1.0"}
	SortStrings(vs)
	assert.Equal(t, []string{"0.5", "1.0.0", "1.0"}, vs)
}
