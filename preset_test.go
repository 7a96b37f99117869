package ztrhuff

import (
	"errors"
	"testing"
)

func TestPresetLengths(t *testing.T) {
	expectEOB := [NumPresets]byte{6, 11, 15}
	expectMax := [NumPresets]byte{14, 15, 15}

	for index := 0; index < NumPresets; index++ {
		lengths, err := PresetLengths(index)
		if err != nil {
			t.Fatalf("PresetLengths(%d) failed: %v", index, err)
		}
		if len(lengths) != NumLiteralSymbols {
			t.Errorf("preset %d: expected %d lengths, got %d", index, NumLiteralSymbols, len(lengths))
		}
		if lengths[EndOfBlock] != expectEOB[index] {
			t.Errorf("preset %d: expected EndOfBlock length %d, got %d", index, expectEOB[index], lengths[EndOfBlock])
		}

		// Every preset is a complete code: the Kraft sum is exactly 1.
		var kraft uint64
		var longest byte
		for _, size := range lengths {
			if size != 0 {
				kraft += uint64(1) << (MaxCodeSize - size)
			}
			if size > longest {
				longest = size
			}
		}
		if kraft != uint64(1)<<MaxCodeSize {
			t.Errorf("preset %d: Kraft sum is %d/2^%d, expected 1", index, kraft, MaxCodeSize)
		}
		if longest != expectMax[index] {
			t.Errorf("preset %d: expected longest code %d, got %d", index, expectMax[index], longest)
		}

		lengths[0] = 99
		again, _ := PresetLengths(index)
		if again[0] == 99 {
			t.Errorf("preset %d: PresetLengths returned shared storage", index)
		}
	}

	for _, index := range []int{-1, NumPresets, 255} {
		if _, err := PresetLengths(index); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("PresetLengths(%d): expected ErrInvalidHeader, got %v", index, err)
		}
		if _, err := BuildPresetTableSet(index); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("BuildPresetTableSet(%d): expected ErrInvalidHeader, got %v", index, err)
		}
	}
}

var presetTestData = [NumPresets]struct {
	input   string
	payload string
}{
	{
		input:   "ACGTNACGTTGCAANNACGTTTGA",
		payload: "4d0100b80e5713ee70d5f800",
	},
	{
		input:   "ACGT-RYKMSWBDHVNNACGT",
		payload: "4d0200b89e9fbfef1f5f3f2faf6fdf77b8fe00",
	},
	{
		input:   "the quick brown fox jumps over the lazy dog.\n",
		payload: "4d03005989bfc7d0f503cfee9761f3dff0771fc719f0173bb2124dfe9e378aef8fe9ff0f",
	},
}

func TestBuildPresetTableSet(t *testing.T) {
	for index, row := range presetTestData {
		set, err := BuildPresetTableSet(index)
		if err != nil {
			t.Fatalf("BuildPresetTableSet(%d) failed: %v", index, err)
		}
		if set.Len() != 1 || set.BitsLeft() != 0 {
			t.Errorf("preset %d: expected 1 table and BitsLeft 0, got %d and %d", index, set.Len(), set.BitsLeft())
		}

		output, err := Decompress(set, mustDecodeHex(t, row.payload))
		if err != nil {
			t.Errorf("preset %d: Decompress failed: %v", index, err)
		} else if string(output) != row.input {
			t.Errorf("preset %d: wrong output:\n\texpect: %q\n\tactual: %q", index, row.input, output)
		}
		set.Release()
	}
}
