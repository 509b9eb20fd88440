package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUTF8DecoderPassesThroughValidText(t *testing.T) {
	d := UTF8Decoder()
	require.Equal(t, "Function F()", d.Decode([]byte("Function F()")))
}

func TestNewDecoderResolvesShiftJISAliases(t *testing.T) {
	for _, name := range []string{"shift_jis", "Shift-JIS", "cp932", "SJIS"} {
		d := NewDecoder(name)
		require.NotNil(t, d.enc)
	}
}

func TestNewDecoderDefaultsToUTF8(t *testing.T) {
	d := NewDecoder("")
	require.Nil(t, d.enc)
	d2 := NewDecoder("nonsense")
	require.Nil(t, d2.enc)
}
