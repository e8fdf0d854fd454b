// Package rle collapses zig-zag coefficient sequences into (value, run)
// tokens terminated by a (0, 0) sentinel.
package rle

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingSentinel is returned when a token list does not end in Sentinel.
	ErrMissingSentinel = errors.New("missing (0,0) sentinel")
	// ErrInvalidRun is returned for a non-positive run before the sentinel.
	ErrInvalidRun = errors.New("invalid run length")
)

// Token is one run of Run consecutive copies of Value.
type Token struct {
	Value int32
	Run   int32
}

// Sentinel terminates every encoded block.
var Sentinel = Token{}

func (t Token) String() string { return fmt.Sprintf("(%d,%d)", t.Value, t.Run) }

// MarshalJSON encodes a token as a two-element array [value, run].
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int32{t.Value, t.Run})
}

// UnmarshalJSON decodes the [value, run] form.
func (t *Token) UnmarshalJSON(data []byte) error {
	var pair [2]int32
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("token: %w", err)
	}
	t.Value, t.Run = pair[0], pair[1]
	return nil
}

// Encode scans seq left to right and emits one token per maximal run of
// equal values, then appends Sentinel unconditionally.
func Encode(seq []int32) []Token {
	tokens := make([]Token, 0, 8)
	for i := 0; i < len(seq); {
		j := i + 1
		for j < len(seq) && seq[j] == seq[i] {
			j++
		}
		tokens = append(tokens, Token{Value: seq[i], Run: int32(j - i)})
		i = j
	}
	return append(tokens, Sentinel)
}

// Expand reverses Encode. The trailing sentinel is required and dropped.
func Expand(tokens []Token) ([]int32, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1] != Sentinel {
		return nil, ErrMissingSentinel
	}
	var seq []int32
	for i, t := range tokens[:len(tokens)-1] {
		if t.Run <= 0 {
			return nil, fmt.Errorf("%w: token %d %v", ErrInvalidRun, i, t)
		}
		for k := int32(0); k < t.Run; k++ {
			seq = append(seq, t.Value)
		}
	}
	return seq, nil
}

// IsZeroBlock reports whether tokens encode a block of all-zero
// coefficients, i.e. [(0,n), (0,0)] or just the sentinel.
func IsZeroBlock(tokens []Token) bool {
	for _, t := range tokens {
		if t.Value != 0 {
			return false
		}
	}
	return true
}

// NonZero counts the non-zero coefficients represented by tokens.
func NonZero(tokens []Token) int {
	var n int
	for _, t := range tokens {
		if t.Value != 0 {
			n += int(t.Run)
		}
	}
	return n
}
