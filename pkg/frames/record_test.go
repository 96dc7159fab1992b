package frames

import (
	"errors"
	"testing"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantIndex int64
		wantRef   string
	}{
		{"zero index", `[0, "first.png"]`, 0, "first.png"},
		{"plain", `[42, "frame_042"]`, 42, "frame_042"},
		{"path ref", `[7, "frames/ab12/frame.png"]`, 7, "frames/ab12/frame.png"},
		{"surrounding whitespace", ` [3, "x"] `, 3, "x"},
		{"max int64", `[9223372036854775807, "last"]`, 9223372036854775807, "last"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecord([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseRecord(%s) failed: %v", tt.data, err)
			}
			if rec.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", rec.Index, tt.wantIndex)
			}
			if rec.Ref != tt.wantRef {
				t.Errorf("Ref = %q, want %q", rec.Ref, tt.wantRef)
			}
		})
	}
}

func TestParseRecord_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not JSON", `not json at all`},
		{"JSON object", `{"index": 0, "ref": "a"}`},
		{"bare string", `"hello"`},
		{"bare number", `42`},
		{"null", `null`},
		{"empty array", `[]`},
		{"one element", `[0]`},
		{"three elements", `[0, "a", "extra"]`},
		{"float index", `[1.5, "a"]`},
		{"float with zero fraction", `[5.0, "a"]`},
		{"exponent index", `[1e2, "a"]`},
		{"string index", `["0", "a"]`},
		{"negative index", `[-1, "a"]`},
		{"non-string ref", `[0, 123]`},
		{"null ref", `[0, null]`},
		{"swapped elements", `["a", 0]`},
		{"trailing garbage", `[0, "a"] extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord([]byte(tt.data))
			if err == nil {
				t.Fatalf("ParseRecord(%s) should fail", tt.data)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error should be *ParseError, got %T", err)
			}
		})
	}
}

func TestEncodeRecord_RoundTrip(t *testing.T) {
	tests := []struct {
		index int64
		ref   string
	}{
		{0, "first.png"},
		{1, "b"},
		{999, "frames/deep/path/img.jpeg"},
		{42, ""},
	}

	for _, tt := range tests {
		data, err := EncodeRecord(tt.index, tt.ref)
		if err != nil {
			t.Fatalf("EncodeRecord(%d, %q) failed: %v", tt.index, tt.ref, err)
		}
		rec, err := ParseRecord(data)
		if err != nil {
			t.Fatalf("ParseRecord(%s) failed: %v", data, err)
		}
		if rec.Index != tt.index || rec.Ref != tt.ref {
			t.Errorf("round trip gave (%d, %q), want (%d, %q)", rec.Index, rec.Ref, tt.index, tt.ref)
		}
	}
}

func TestEncodeRecord_NegativeIndex(t *testing.T) {
	if _, err := EncodeRecord(-1, "a"); err == nil {
		t.Error("EncodeRecord(-1, ...) should fail")
	}
}

func TestSortRecords(t *testing.T) {
	records := []Record{
		{Index: 2, Ref: "b"},
		{Index: 0, Ref: "a"},
		{Index: 1, Ref: "c"},
	}

	SortRecords(records)

	want := []string{"a", "c", "b"}
	for i, ref := range want {
		if records[i].Ref != ref {
			t.Errorf("records[%d].Ref = %q, want %q", i, records[i].Ref, ref)
		}
	}
}

func TestSortRecords_StableDuplicates(t *testing.T) {
	records := []Record{
		{Index: 5, Ref: "first"},
		{Index: 3, Ref: "low"},
		{Index: 5, Ref: "second"},
		{Index: 5, Ref: "third"},
	}

	SortRecords(records)

	if len(records) != 4 {
		t.Fatalf("sort changed length to %d", len(records))
	}
	if records[0].Ref != "low" {
		t.Errorf("records[0].Ref = %q, want %q", records[0].Ref, "low")
	}
	// Equal indices keep their input order.
	for i, ref := range []string{"first", "second", "third"} {
		if records[i+1].Ref != ref {
			t.Errorf("records[%d].Ref = %q, want %q", i+1, records[i+1].Ref, ref)
		}
	}
}

func TestSortRecords_PermutationIndependent(t *testing.T) {
	base := []Record{
		{Index: 0, Ref: "a"},
		{Index: 10, Ref: "b"},
		{Index: 20, Ref: "c"},
		{Index: 30, Ref: "d"},
	}
	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 3, 0, 2},
	}

	for _, perm := range permutations {
		records := make([]Record, len(base))
		for i, p := range perm {
			records[i] = base[p]
		}
		SortRecords(records)
		for i := range base {
			if records[i] != base[i] {
				t.Errorf("permutation %v: records[%d] = %+v, want %+v", perm, i, records[i], base[i])
			}
		}
	}
}

func TestImageName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"img_001.png", "img_001"},
		{"frames/ab12/shot.jpeg", "shot"},
		{"no-extension", "no-extension"},
		{"dir/no-extension", "no-extension"},
		{"archive.tar.gz", "archive.tar"},
		{"trailing/", "trailing"},
	}

	for _, tt := range tests {
		if got := ImageName(tt.ref); got != tt.want {
			t.Errorf("ImageName(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
