package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ pflag.Value = new(Format)

func TestFormat(t *testing.T) {
	var f Format
	assert.Equal(t, "json", f.String())
	assert.Equal(t, ".json", f.Ext())

	require.NoError(t, f.Set("YML"))
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, ".yaml", f.Ext())

	require.NoError(t, f.Set("json"))
	assert.Equal(t, FormatJSON, f)

	err := f.Set("xml")
	require.ErrorContains(t, err, `unsupported format "xml"`)
	assert.Equal(t, FormatJSON, f)
}
