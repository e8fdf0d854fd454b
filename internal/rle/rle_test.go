package rle

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func seq64(fill func(i int) int32) []int32 {
	s := make([]int32, 64)
	for i := range s {
		s[i] = fill(i)
	}
	return s
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		seq  []int32
		want []Token
	}{
		{
			name: "all zero",
			seq:  seq64(func(int) int32 { return 0 }),
			want: []Token{{0, 64}, {0, 0}},
		},
		{
			name: "dc then zeros",
			seq:  append([]int32{63}, make([]int32, 63)...),
			want: []Token{{63, 1}, {0, 63}, {0, 0}},
		},
		{
			name: "runs in the middle",
			seq:  []int32{5, 5, -1, 0, 0, 0, 2, 2},
			want: []Token{{5, 2}, {-1, 1}, {0, 3}, {2, 2}, {0, 0}},
		},
		{
			name: "all distinct",
			seq:  seq64(func(i int) int32 { return int32(i + 1) }),
			want: nil, // checked by length below
		},
		{
			name: "empty",
			seq:  nil,
			want: []Token{{0, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.seq)
			if tt.want == nil {
				if len(got) != 65 {
					t.Fatalf("got %d tokens, want 65", len(got))
				}
				if got[64] != Sentinel {
					t.Fatalf("last token %v, want sentinel", got[64])
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncode_SentinelAfterTrailingZeros(t *testing.T) {
	got := Encode([]int32{1, 0, 0})
	want := []Token{{1, 1}, {0, 2}, {0, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_RoundTrip(t *testing.T) {
	inputs := [][]int32{
		seq64(func(int) int32 { return 0 }),
		seq64(func(i int) int32 { return int32(i % 3) }),
		seq64(func(i int) int32 { return int32(i / 9) }),
		seq64(func(i int) int32 { return int32(-i * i) }),
	}
	for i, in := range inputs {
		out, err := Expand(Encode(in))
		if err != nil {
			t.Fatalf("input %d: %v", i, err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Errorf("input %d: got %v, want %v", i, out, in)
		}
	}
}

func TestExpand_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 5000; n++ {
		// Small value ranges produce long runs; wide ranges mostly singletons.
		span := int32(1 + rng.Intn(8))
		if n%4 == 0 {
			span = 2048
		}
		in := seq64(func(int) int32 { return rng.Int31n(2*span+1) - span })

		tokens := Encode(in)
		if len(tokens) < 2 || len(tokens) > 65 {
			t.Fatalf("input %d: %d tokens", n, len(tokens))
		}
		if tokens[len(tokens)-1] != Sentinel {
			t.Fatalf("input %d: last token %v", n, tokens[len(tokens)-1])
		}
		for i := 1; i < len(tokens)-1; i++ {
			if tokens[i].Value == tokens[i-1].Value {
				t.Fatalf("input %d: adjacent tokens %d and %d share value %d", n, i-1, i, tokens[i].Value)
			}
		}
		out, err := Expand(tokens)
		if err != nil {
			t.Fatalf("input %d: %v", n, err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Fatalf("input %d: got %v, want %v", n, out, in)
		}
	}
}

func TestExpand_Errors(t *testing.T) {
	if _, err := Expand(nil); !errors.Is(err, ErrMissingSentinel) {
		t.Errorf("nil: got %v", err)
	}
	if _, err := Expand([]Token{{3, 64}}); !errors.Is(err, ErrMissingSentinel) {
		t.Errorf("no sentinel: got %v", err)
	}
	if _, err := Expand([]Token{{3, -1}, {0, 0}}); !errors.Is(err, ErrInvalidRun) {
		t.Errorf("negative run: got %v", err)
	}
	if _, err := Expand([]Token{{0, 0}, {0, 0}}); !errors.Is(err, ErrInvalidRun) {
		t.Errorf("inner sentinel: got %v", err)
	}
}

func TestIsZeroBlockAndNonZero(t *testing.T) {
	zero := []Token{{0, 64}, {0, 0}}
	if !IsZeroBlock(zero) || NonZero(zero) != 0 {
		t.Error("zero block misclassified")
	}
	mixed := []Token{{63, 1}, {-2, 2}, {0, 61}, {0, 0}}
	if IsZeroBlock(mixed) {
		t.Error("mixed block reported as zero")
	}
	if got := NonZero(mixed); got != 3 {
		t.Errorf("NonZero: got %d, want 3", got)
	}
}

func TestTokenJSON(t *testing.T) {
	data, err := json.Marshal([]Token{{-7, 3}, Sentinel})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[[-7,3],[0,0]]" {
		t.Errorf("marshal: got %s", data)
	}

	var back []Token
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, []Token{{-7, 3}, {0, 0}}) {
		t.Errorf("unmarshal: got %v", back)
	}
}
