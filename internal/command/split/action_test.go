package split

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

func TestSplitAll(t *testing.T) {
	results, err := SplitAll([]string{"foo%bar%", "", "abc%missing"})
	require.ErrorIs(t, err, pctexp.ErrInvalidFormat)
	require.Len(t, results, 3)

	assert.Equal(t, []Entry{
		{Kind: "substr", Text: "foo", Offset: 0},
		{Kind: "var", Text: "bar", Offset: 4},
	}, results[0].Entries)
	assert.Empty(t, results[0].Error)

	assert.Empty(t, results[1].Entries)
	assert.Empty(t, results[1].Error)

	assert.Equal(t, []Entry{{Kind: "substr", Text: "abc", Offset: 0}}, results[2].Entries)
	assert.Contains(t, results[2].Error, "unterminated")
}

func TestRender_Text(t *testing.T) {
	results, _ := SplitAll([]string{"%foo%%bar%", "x%"})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, results))
	assert.Equal(t,
		"var\t1\tfoo\n"+
			"var\t6\tbar\n"+
			"\n"+
			"substr\t0\tx\n"+
			"error\t-\tpctexp: unterminated variable reference at offset 1\n",
		buf.String())
}

func TestRender_JSON(t *testing.T) {
	results, err := SplitAll([]string{"%foo%bar"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, results))

	var got []Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, results, got)
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestRender_YAML(t *testing.T) {
	results, err := SplitAll([]string{"a%b%"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatYAML, results))

	var got []Result
	require.NoError(t, yamlv3.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, results, got)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, "xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
