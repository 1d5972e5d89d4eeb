//go:build !rp2040

package dallas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thermosense-go/errcode"
	"thermosense-go/services/thermo"
)

func TestConversionWaitMs(t *testing.T) {
	cases := map[uint8]uint32{8: 93, 9: 93, 10: 187, 11: 375, 12: 750, 13: 750}
	for bits, want := range cases {
		require.Equal(t, want, ConversionWaitMs(bits), "%d bits", bits)
	}
}

func TestBuildOnHost(t *testing.T) {
	_, err := thermo.Build(thermo.BuildInput{Kind: "dallas", Pin: 4})
	require.Equal(t, errcode.Unsupported, errcode.Of(err))

	_, err = thermo.Build(thermo.BuildInput{Kind: "dallas", Pin: -1})
	require.Equal(t, errcode.InvalidParams, errcode.Of(err))
}
