package tfl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePath(t *testing.T, body string) LineString {
	t.Helper()

	var path Path
	require.NoError(t, json.Unmarshal([]byte(body), &path))

	return path.LineString
}

func TestLineStringPairs(t *testing.T) {
	lineString := decodePath(t, `{"lineString": [[51.5, -0.12], [51.51, -0.1]]}`)

	assert.Equal(t, LineStringPairs, lineString.Kind)
	assert.Equal(t, [][2]float64{{51.5, -0.12}, {51.51, -0.1}}, lineString.Points)
}

func TestLineStringEncodedJSON(t *testing.T) {
	lineString := decodePath(t, `{"lineString": "[[51.5, -0.12],[51.51, -0.1]]"}`)

	assert.Equal(t, LineStringEncoded, lineString.Kind)
	assert.Equal(t, [][2]float64{{51.5, -0.12}, {51.51, -0.1}}, lineString.Points)
}

func TestLineStringEncodedFlat(t *testing.T) {
	lineString := decodePath(t, `{"lineString": "[51.5,-0.12,51.51,-0.1,51.52]"}`)

	assert.Equal(t, LineStringEncoded, lineString.Kind)
	assert.Equal(t, [][2]float64{{51.5, -0.12}, {51.51, -0.1}}, lineString.Points)
}

func TestLineStringUnreadable(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"lineString": null}`,
		`{"lineString": ""}`,
		`{"lineString": "not,a,path"}`,
		`{"lineString": [[51.5]]}`,
		`{"lineString": 42}`,
		`{"lineString": {"type": "LineString"}}`,
	} {
		lineString := decodePath(t, body)
		assert.Equal(t, LineStringNone, lineString.Kind, body)
		assert.True(t, lineString.IsEmpty(), body)
	}
}

func TestLineStringMarshal(t *testing.T) {
	out, err := json.Marshal(LineString{Kind: LineStringEncoded, Points: [][2]float64{{51.5, -0.12}}})
	require.NoError(t, err)
	assert.JSONEq(t, `[[51.5, -0.12]]`, string(out))

	out, err = json.Marshal(LineString{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
