package bytecode

import (
	"bytes"
	"errors"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     []byte
		wantKind ErrorKind
		wantErr  bool
	}{
		{
			name: "with prefix",
			raw:  "0x6080604052",
			want: []byte{0x60, 0x80, 0x60, 0x40, 0x52},
		},
		{
			name: "without prefix",
			raw:  "6080604052",
			want: []byte{0x60, 0x80, 0x60, 0x40, 0x52},
		},
		{
			name: "uppercase prefix",
			raw:  "0X6080",
			want: []byte{0x60, 0x80},
		},
		{
			name: "uppercase digits",
			raw:  "0x60A0",
			want: []byte{0x60, 0xa0},
		},
		{
			name: "edge whitespace",
			raw:  "  0x6001  \n",
			want: []byte{0x60, 0x01},
		},
		{
			name: "internal whitespace",
			raw:  "0x60 80 60 40 52",
			want: []byte{0x60, 0x80, 0x60, 0x40, 0x52},
		},
		{
			name:     "empty",
			raw:      "",
			wantErr:  true,
			wantKind: EmptyInput,
		},
		{
			name:     "whitespace only",
			raw:      "   \t\n",
			wantErr:  true,
			wantKind: EmptyInput,
		},
		{
			name:     "prefix only",
			raw:      "0x",
			wantErr:  true,
			wantKind: EmptyInput,
		},
		{
			name:     "odd length",
			raw:      "0x601",
			wantErr:  true,
			wantKind: OddLength,
		},
		{
			name:     "invalid character",
			raw:      "0x60zz",
			wantErr:  true,
			wantKind: InvalidCharacter,
		},
		{
			name:     "invalid character without prefix",
			raw:      "ghij",
			wantErr:  true,
			wantKind: InvalidCharacter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Clean(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Clean(%q) error type = %T, want *ValidationError", tt.raw, err)
				}
				if verr.Kind != tt.wantKind {
					t.Errorf("Clean(%q) kind = %v, want %v", tt.raw, verr.Kind, tt.wantKind)
				}
				return
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Clean(%q) = %x, want %x", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanInvalidCharacterPosition(t *testing.T) {
	_, err := Clean("0x60g0")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Kind != InvalidCharacter {
		t.Fatalf("kind = %v, want InvalidCharacter", verr.Kind)
	}
	if verr.Char != 'g' {
		t.Errorf("char = %q, want 'g'", verr.Char)
	}
	if verr.Pos != 2 {
		t.Errorf("pos = %d, want 2", verr.Pos)
	}
}

func TestCleanNormalizationIdempotent(t *testing.T) {
	// "0x" + digits and the bare digits must produce identical bytes.
	inputs := []string{"6080604052", "ff00ff", "5f", "7f000102"}
	for _, hex := range inputs {
		plain, err := Clean(hex)
		if err != nil {
			t.Fatalf("Clean(%q): %v", hex, err)
		}
		prefixed, err := Clean("0x" + hex)
		if err != nil {
			t.Fatalf("Clean(0x%s): %v", hex, err)
		}
		if !bytes.Equal(plain, prefixed) {
			t.Errorf("Clean(%q) = %x but Clean(0x%s) = %x", hex, plain, hex, prefixed)
		}
	}
}

func TestCleanNSizeCeiling(t *testing.T) {
	// 4 bytes against a 3 byte ceiling.
	_, err := CleanN("0x60806040", 3)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Kind != TooLarge {
		t.Fatalf("kind = %v, want TooLarge", verr.Kind)
	}
	if verr.Size != 4 || verr.Max != 3 {
		t.Errorf("size/max = %d/%d, want 4/3", verr.Size, verr.Max)
	}

	// At the ceiling is fine.
	if _, err := CleanN("0x608060", 3); err != nil {
		t.Errorf("CleanN at ceiling failed: %v", err)
	}
}

func TestFromRaw(t *testing.T) {
	if _, err := FromRaw(nil, 0); err == nil {
		t.Error("FromRaw(nil) should fail")
	}

	src := []byte{0x60, 0x80}
	got, err := FromRaw(src, 0)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	src[0] = 0xff
	if got[0] != 0x60 {
		t.Error("FromRaw must return an owned copy")
	}

	_, err = FromRaw(make([]byte, 10), 5)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != TooLarge {
		t.Errorf("FromRaw over ceiling = %v, want TooLarge", err)
	}
}
