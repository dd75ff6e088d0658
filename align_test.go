/*
@Description: Tests for chunk-size and alignment arithmetic
@Language: Go 1.23.4
*/

package sizeceph

import "testing"

// TestRoundUp checks the basic rounding identity used throughout chunk
// size arithmetic.
func TestRoundUp(t *testing.T) {
	cases := []struct {
		n, mult, want int
	}{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{511, 512, 512},
		{512, 512, 512},
		{513, 512, 1024},
	}
	for _, c := range cases {
		if got := roundUp(c.n, c.mult); got != c.want {
			t.Errorf("roundUp(%d, %d) = %d, want %d", c.n, c.mult, got, c.want)
		}
	}
}

// TestChunkSizeIdentity exercises the SizeCeph ChunkSize identity (P2):
// k * chunk_size must equal the k*a-aligned stripe width.
func TestChunkSizeIdentity(t *testing.T) {
	c := NewSizeCephCodec()
	cases := []int{0, 1, 15, 16, 4096, 4097, 1 << 20}
	for _, stripeWidth := range cases {
		cs := c.ChunkSize(stripeWidth)
		padded := roundUp(stripeWidth, c.k*c.a)
		if cs*c.k != padded {
			t.Errorf("ChunkSize(%d) = %d: %d*%d != %d", stripeWidth, cs, cs, c.k, padded)
		}
	}
}

// TestXORChunkSizeIdentity mirrors the above for the k=2 code.
func TestXORChunkSizeIdentity(t *testing.T) {
	c := NewXORCodec()
	cases := []int{0, 1, 7, 8, 4096, 4097}
	for _, stripeWidth := range cases {
		cs := c.ChunkSize(stripeWidth)
		padded := roundUp(stripeWidth, XORK*xorAlignment)
		if cs*XORK != padded {
			t.Errorf("ChunkSize(%d) = %d: %d*%d != %d", stripeWidth, cs, cs, XORK, padded)
		}
	}
}
