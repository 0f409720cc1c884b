package pcb

// GetBoundingBox returns the extent of everything drawn on the board:
// copper, footprint pads and graphics on any layer. Arcs are bounded by
// their three defining points.
func (b *Board) GetBoundingBox() BoundingBox {
	box := NewBoundingBox()

	for _, t := range b.Tracks {
		box.ExpandDisc(t.Start, t.Width/2)
		box.ExpandDisc(t.End, t.Width/2)
	}
	for _, v := range b.Vias {
		box.ExpandDisc(v.Position, v.Size/2)
	}
	for i := range b.Footprints {
		box.ExpandBox(b.Footprints[i].GetBoundingBox())
	}

	g := b.Graphics
	for _, l := range g.Lines {
		box.Expand(l.Start)
		box.Expand(l.End)
	}
	for _, c := range g.Circles {
		box.ExpandDisc(c.Center, c.Radius())
	}
	for _, a := range g.Arcs {
		for _, p := range []Position{a.Start, a.Mid, a.End} {
			box.Expand(p)
		}
	}
	for _, r := range g.Rects {
		box.Expand(r.Start)
		box.Expand(r.End)
	}
	for _, p := range g.Polys {
		for _, pt := range p.Points {
			box.Expand(pt)
		}
	}
	return box
}

// GetBoundingBox returns the extent of the footprint's pads, taking the
// footprint rotation into account. Each pad counts as its unrotated
// rectangle around its centre. A footprint without pads is its origin.
func (fp *Footprint) GetBoundingBox() BoundingBox {
	box := NewBoundingBox()
	if len(fp.Pads) == 0 {
		box.Expand(fp.Position.Position)
		return box
	}
	for _, pad := range fp.Pads {
		c := fp.TransformPosition(pad.Position)
		half := Position{X: pad.Size.Width / 2, Y: pad.Size.Height / 2}
		box.Expand(Position{X: c.X - half.X, Y: c.Y - half.Y})
		box.Expand(Position{X: c.X + half.X, Y: c.Y + half.Y})
	}
	return box
}
