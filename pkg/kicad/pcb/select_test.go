package pcb

import (
	"testing"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

func TestSelectFootprints(t *testing.T) {
	board := parseFixture(t)

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantCode errors.Code
	}{
		{name: "exact", patterns: []string{"U1"}, want: []string{"U1"}},
		{name: "glob", patterns: []string{"*"}, want: []string{"U1", "J1"}},
		{name: "board order", patterns: []string{"J1", "U1"}, want: []string{"U1", "J1"}},
		{name: "overlapping patterns", patterns: []string{"J?", "J1"}, want: []string{"J1"}},
		{name: "character class", patterns: []string{"[UJ]1"}, want: []string{"U1", "J1"}},
		{name: "no patterns", patterns: nil, want: nil},
		{name: "unmatched", patterns: []string{"U1", "R*"}, wantCode: errors.ErrCodeNotFound},
		{name: "bad pattern", patterns: []string{"[U"}, wantCode: errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := board.SelectFootprints(tt.patterns)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("SelectFootprints() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectFootprints() unexpected error: %v", err)
			}

			var refs []string
			for _, fp := range got {
				refs = append(refs, fp.Reference)
			}
			if len(refs) != len(tt.want) {
				t.Fatalf("SelectFootprints() = %v, want %v", refs, tt.want)
			}
			for i := range refs {
				if refs[i] != tt.want[i] {
					t.Errorf("SelectFootprints()[%d] = %v, want %v", i, refs[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectFootprintsReturnsBoardPointers(t *testing.T) {
	board := parseFixture(t)
	got, err := board.SelectFootprints([]string{"U1"})
	if err != nil {
		t.Fatalf("SelectFootprints() error = %v", err)
	}
	if got[0] != &board.Footprints[0] {
		t.Error("SelectFootprints() should return pointers into board.Footprints")
	}
}
