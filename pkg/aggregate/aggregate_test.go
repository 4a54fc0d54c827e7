package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/sanitize"
)

func listing(t *testing.T, s string) sanitize.Result {
	t.Helper()
	require.True(t, json.Valid([]byte(s)), "fixture must be valid JSON")
	return sanitize.Success(json.RawMessage(s))
}

func TestCollapseKeepsHighestBuildPerVersion(t *testing.T) {
	res := listing(t, `{
		"a": [
			{"name": "a", "version": "1", "build_number": 1, "build": "b1", "channel": "main", "platform": "linux-64"},
			{"name": "a", "version": "1", "build_number": 5, "build": "b5", "channel": "other", "platform": "noarch"},
			{"name": "a", "version": "2", "build_number": 2, "build": "b2"}
		]
	}`)

	got, err := Collapse(res)
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t, "a", rec.Name)
	assert.Equal(t, []string{"1", "2"}, rec.Versions)
	assert.Equal(t, []int{5, 2}, rec.BuildNumbers)
	assert.Equal(t, []string{"b5", "b2"}, rec.BuildStrings)
	require.NotNil(t, rec.Channel)
	assert.Equal(t, "main", *rec.Channel)
	require.NotNil(t, rec.Platform)
	assert.Equal(t, "linux-64", *rec.Platform)
}

func TestCollapseOrderIndependent(t *testing.T) {
	forward := listing(t, `{"a": [
		{"name": "a", "version": "1.10", "build_number": 0, "build_string": "x"},
		{"name": "a", "version": "1.2", "build_number": 3, "build_string": "y"},
		{"name": "a", "version": "1.2", "build_number": 1, "build_string": "z"}
	]}`)
	backward := listing(t, `{"a": [
		{"name": "a", "version": "1.2", "build_number": 1, "build_string": "z"},
		{"name": "a", "version": "1.2", "build_number": 3, "build_string": "y"},
		{"name": "a", "version": "1.10", "build_number": 0, "build_string": "x"}
	]}`)

	a, err := Collapse(forward)
	require.NoError(t, err)
	b, err := Collapse(backward)
	require.NoError(t, err)

	assert.Equal(t, a[0].Versions, b[0].Versions)
	assert.Equal(t, a[0].BuildNumbers, b[0].BuildNumbers)
	assert.Equal(t, a[0].BuildStrings, b[0].BuildStrings)
	assert.Equal(t, []string{"1.2", "1.10"}, a[0].Versions)
	assert.Equal(t, []int{3, 0}, a[0].BuildNumbers)
}

func TestCollapseIdempotent(t *testing.T) {
	res := listing(t, `{"a": [
		{"name": "a", "version": "1", "build_number": 1, "build": "b1"},
		{"name": "a", "version": "1", "build_number": 5, "build": "b5"}
	]}`)

	first, err := Collapse(res)
	require.NoError(t, err)

	// feed the collapsed record back as a listing of single entries
	var entries []map[string]any
	for i, v := range first[0].Versions {
		entries = append(entries, map[string]any{
			"name":         first[0].Name,
			"version":      v,
			"build_number": first[0].BuildNumbers[i],
			"build_string": first[0].BuildStrings[i],
		})
	}
	body, err := json.Marshal(map[string]any{"a": entries})
	require.NoError(t, err)

	second, err := Collapse(sanitize.Success(body))
	require.NoError(t, err)
	assert.Equal(t, first[0].Versions, second[0].Versions)
	assert.Equal(t, first[0].BuildNumbers, second[0].BuildNumbers)
	assert.Equal(t, first[0].BuildStrings, second[0].BuildStrings)
}

func TestCollapseMissingBuildNumberIsZero(t *testing.T) {
	res := listing(t, `{"a": [
		{"name": "a", "version": "1.0", "build": "first"},
		{"name": "a", "version": "1.0.0", "build_number": 0, "build": "second"}
	]}`)

	got, err := Collapse(res)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"1.0"}, got[0].Versions)
	assert.Equal(t, []int{0}, got[0].BuildNumbers)
	assert.Equal(t, []string{"first"}, got[0].BuildStrings)
}

func TestCollapseSortsPackagesByName(t *testing.T) {
	res := listing(t, `{
		"zlib": [{"name": "zlib", "version": "1.3"}],
		"numpy": [{"name": "numpy", "version": "1.26.4"}],
		"empty": []
	}`)

	got, err := Collapse(res)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "numpy", got[0].Name)
	assert.Equal(t, "zlib", got[1].Name)
}

func TestCollapsePassesFailureThrough(t *testing.T) {
	tests := []struct {
		name string
		res  sanitize.Result
	}{
		{"malformed", sanitize.Failure("garbage")},
		{"tool error", sanitize.Success(json.RawMessage(`{"error": "PackagesNotFoundError"}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collapse(tt.res)
			assert.Nil(t, got)

			var fe *sanitize.FailureError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.res, fe.Result)

			best, err := BestOnly(tt.res)
			assert.Nil(t, best)
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestBestOnlyKeepsGreatestVersion(t *testing.T) {
	res := listing(t, `{"a": [
		{"name": "a", "version": "1.0", "build": "x"},
		{"name": "a", "version": "2.0", "build": "y", "extra": true},
		{"name": "a", "version": "1.5", "build": "z"}
	]}`)

	got, err := BestOnly(res)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"name": "a", "version": "2.0", "build": "y", "extra": true}`, string(got[0]))
}

func TestBestOnlyPrefersPostRelease(t *testing.T) {
	res := listing(t, `{"pip": [
		{"name": "pip", "version": "21.0.post1", "build": "post"},
		{"name": "pip", "version": "21.0", "build": "release"},
		{"name": "pip", "version": "21.0.dev0", "build": "dev"}
	]}`)

	got, err := BestOnly(res)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, string(got[0]), `"21.0.post1"`)
}

func TestBestOnlyFirstWinsTies(t *testing.T) {
	res := listing(t, `{"a": [
		{"name": "a", "version": "2.0", "build": "first"},
		{"name": "a", "version": "2.0.0", "build": "second"}
	]}`)

	got, err := BestOnly(res)
	require.NoError(t, err)
	require.Len(t, got, 1)

	pkg, err := core.NormalizePackage(got[0])
	require.NoError(t, err)
	require.NotNil(t, pkg.BuildString)
	assert.Equal(t, "first", *pkg.BuildString)
}

func TestBestOnlyOrdersByName(t *testing.T) {
	res := listing(t, `{
		"scipy": [{"name": "scipy", "version": "1.11"}],
		"numpy": [{"name": "numpy", "version": "1.26"}, {"name": "numpy", "version": "2.0"}]
	}`)

	got, err := BestOnly(res)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Contains(t, string(got[0]), `"numpy"`)
	assert.Contains(t, string(got[0]), `"2.0"`)
	assert.Contains(t, string(got[1]), `"scipy"`)
}
