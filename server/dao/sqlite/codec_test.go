package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncDecBinaryRoundTrips(t *testing.T) {
	orig := "matear(\"hola\")\npifiá un poco"

	encoded, err := encBinary(orig)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	var decoded string
	require.NoError(t, decBinary(encoded, &decoded))
	assert.Equal(t, orig, decoded)
}

func TestEncDecBinaryEmptyString(t *testing.T) {
	encoded, err := encBinary("")
	require.NoError(t, err)

	var decoded string
	require.NoError(t, decBinary(encoded, &decoded))
	assert.Equal(t, "", decoded)
}
