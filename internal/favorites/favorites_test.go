package favorites

import (
	"reflect"
	"testing"
)

func TestToggleTwiceRestoresMembership(t *testing.T) {
	for _, id := range []string{"1", "42", "abc"} {
		start := New("42")
		before := start.Has(id)

		once := start.Toggle(id)
		if once.Has(id) == before {
			t.Errorf("Toggle(%q) did not flip membership", id)
		}

		twice := once.Toggle(id)
		if twice.Has(id) != before {
			t.Errorf("Toggle(%q) twice: Has = %v, want %v", id, twice.Has(id), before)
		}
		if !start.Has("42") || start.Len() != 1 {
			t.Errorf("Toggle modified the receiver: %v", start.IDs())
		}
	}
}

func TestToggleIgnoresBlankIDs(t *testing.T) {
	s := New("1").Toggle("  ")
	if want := []string{"1"}; !reflect.DeepEqual(s.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", s.IDs(), want)
	}
}

func TestNilSetIsEmpty(t *testing.T) {
	var s Set
	if s.Has("1") || s.Len() != 0 {
		t.Fatalf("nil set reported members")
	}
	if got := s.Toggle("1"); !got.Has("1") {
		t.Errorf("Toggle on nil set = %v, want [1]", got.IDs())
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := Encode(New("7"))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(data) != `["7"]` {
		t.Errorf("Encode() = %s, want [\"7\"]", data)
	}
	if got := Decode(data); !reflect.DeepEqual(got.IDs(), []string{"7"}) {
		t.Errorf("Decode() = %v, want [7]", got.IDs())
	}
}

func TestDecodeTolerance(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"empty", "", []string{}},
		{"corrupt", "{not json", []string{}},
		{"object", `{"a":1}`, []string{}},
		{"numbers and strings", `[3, "1", " 2 "]`, []string{"1", "2", "3"}},
		{"junk entries skipped", `["1", true, null, {"x":1}]`, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.data)).IDs()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
