package pcb

import (
	"path"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

// SelectFootprints returns the footprints whose reference matches any of the
// glob patterns (path.Match syntax), in board order. Every pattern must match
// at least one footprint. No patterns select nothing.
func (b *Board) SelectFootprints(patterns []string) ([]*Footprint, error) {
	var selected []*Footprint
	matched := make([]bool, len(patterns))

	for i := range b.Footprints {
		fp := &b.Footprints[i]
		hit := false
		for j, pattern := range patterns {
			ok, err := path.Match(pattern, fp.Reference)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "bad reference pattern %q", pattern)
			}
			if ok {
				matched[j] = true
				hit = true
			}
		}
		if hit {
			selected = append(selected, fp)
		}
	}

	for j, pattern := range patterns {
		if !matched[j] {
			return nil, errors.New(errors.ErrCodeNotFound, "no footprint matches %q", pattern)
		}
	}

	return selected, nil
}
