package letters

import "github.com/dshills/seqview/internal/renderer/viewport"

// Display is the letter display state handed to the host surface.
type Display struct {
	Projection
	Layout Layout
}

// Compute projects the buffer onto vp and justifies the result.
// When letters are hidden or the buffer is stale the layout carries no text.
func (p *Projector) Compute(vp viewport.Viewport, buf Buffer, widthPx float64) (Display, error) {
	proj, err := p.Project(vp, buf, widthPx)
	if err != nil {
		return Display{}, err
	}
	d := Display{Projection: proj}
	if proj.Empty() {
		return d, nil
	}
	d.Layout, err = Justify(vp, proj.Text, widthPx)
	if err != nil {
		return Display{}, err
	}
	return d, nil
}
