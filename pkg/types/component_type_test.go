package types

import "testing"

func TestParseComponentType(t *testing.T) {
	for _, c := range AllComponentTypes() {
		t.Run(c.String(), func(t *testing.T) {
			got, err := ParseComponentType(c.String())
			if err != nil {
				t.Fatalf("ParseComponentType(%q) error: %v", c.String(), err)
			}
			if got != c {
				t.Errorf("ParseComponentType(%q) = %v, want %v", c.String(), got, c)
			}
		})
	}

	if _, err := ParseComponentType("sprinkler"); err == nil {
		t.Error("ParseComponentType(\"sprinkler\") should fail")
	}
}

func TestComponentTypeIsMarker(t *testing.T) {
	if !ComponentInvalid.IsMarker() {
		t.Error("invalid should be a marker type")
	}
	if ComponentLight.IsMarker() {
		t.Error("light should not be a marker type")
	}
	if ComponentType(42).IsValid() {
		t.Error("ComponentType(42) should not be valid")
	}
}
