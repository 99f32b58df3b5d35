package awtrix

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFromHex(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"#FF0000", RGB(255, 0, 0), false},
		{"00ff00", RGB(0, 255, 0), false},
		{"#0a0B0c", RGB(10, 11, 12), false},
		{"#000000", RGB(0, 0, 0), false},
		{"#12345", Color{}, true},
		{"#1234567", Color{}, true},
		{"#GGGGGG", Color{}, true},
		{"", Color{}, true},
		{"##FF0000", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := FromHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsInvalidColorError(err) {
					t.Errorf("FromHex(%q) error type = %v, want invalid color", tt.input, err)
				}
				if !strings.Contains(err.Error(), tt.input) {
					t.Errorf("error %q should name the input %q", err.Error(), tt.input)
				}
				return
			}
			if got != tt.want {
				t.Errorf("FromHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColor_HexRoundTrip(t *testing.T) {
	inputs := []string{"#abcdef", "ABCDEF", "#000000", "ffffff", "#7d56f4"}
	for _, in := range inputs {
		c, err := FromHex(in)
		if err != nil {
			t.Fatalf("FromHex(%q) error = %v", in, err)
		}
		want := "#" + strings.ToUpper(strings.TrimPrefix(in, "#"))
		if got := c.Hex(); got != want {
			t.Errorf("Hex() = %s, want %s", got, want)
		}
	}
}

func TestColor_HexZeroPadded(t *testing.T) {
	if got := RGB(1, 2, 3).Hex(); got != "#010203" {
		t.Errorf("Hex() = %s, want #010203", got)
	}
}

func TestColor_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(RGB(255, 128, 0))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != "[255,128,0]" {
		t.Errorf("Marshal = %s, want [255,128,0]", data)
	}
}

func TestColor_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"array", `[255, 0, 128]`, RGB(255, 0, 128), false},
		{"hex with hash", `"#FF0080"`, RGB(255, 0, 128), false},
		{"hex without hash", `"ff0080"`, RGB(255, 0, 128), false},
		{"invalid hex", `"#ZZ0000"`, Color{}, true},
		{"short array", `[1, 2]`, Color{}, true},
		{"channel out of range", `[256, 0, 0]`, Color{}, true},
		{"object", `{"r": 1}`, Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Color
			err := json.Unmarshal([]byte(tt.input), &c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && c != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, c, tt.want)
			}
		})
	}
}

func TestColor_ArrayAndHexDecodeEqual(t *testing.T) {
	samples := []Color{RGB(0, 0, 0), RGB(255, 255, 255), RGB(18, 52, 86), RGB(200, 1, 99)}
	for _, c := range samples {
		var fromArray, fromHex Color
		array, _ := json.Marshal(c)
		if err := json.Unmarshal(array, &fromArray); err != nil {
			t.Fatalf("decode array %s: %v", array, err)
		}
		hex, _ := json.Marshal(c.Hex())
		if err := json.Unmarshal(hex, &fromHex); err != nil {
			t.Fatalf("decode hex %s: %v", hex, err)
		}
		if fromArray != fromHex {
			t.Errorf("array decode %v != hex decode %v", fromArray, fromHex)
		}
	}
}

func TestParseColor(t *testing.T) {
	red := RGB(255, 0, 0)
	tests := []struct {
		input string
		want  Color
	}{
		{"255,0,0", red},
		{" 255 , 0 , 0 ", red},
		{"0, 255, 0", RGB(0, 255, 0)},
		{"red", red},
		{"RED", red},
		{"Orange", RGB(255, 165, 0)},
		{"purple", RGB(128, 0, 128)},
		{"#FF0000", red},
		{"ff0000", red},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColor_Rejects(t *testing.T) {
	inputs := []string{"256,0,0", "0,0", "", "invalid", "-1,0,0", "0,0,0,0", "#GG0000", "a,b,c"}
	for _, in := range inputs {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) should fail", in)
		}
	}
}

func TestParseColor_UnknownNameIsDistinct(t *testing.T) {
	_, err := ParseColor("invalid")
	if !IsUnknownColorError(err) {
		t.Errorf("ParseColor(invalid) error = %v, want unknown color", err)
	}
	if IsInvalidColorError(err) {
		t.Error("unknown color name should not be reported as invalid color")
	}

	_, err = ParseColor("256,0,0")
	if !IsInvalidColorError(err) {
		t.Errorf("ParseColor(256,0,0) error = %v, want invalid color", err)
	}
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	if len(names) != 10 {
		t.Fatalf("ColorNames() returned %d names, want 10", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("ColorNames() not sorted: %v", names)
		}
	}
}
