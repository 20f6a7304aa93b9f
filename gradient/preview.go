package gradient

// Preview samples the gradient across its own value domain, one color per column
// Used to draw legend strips
func Preview(g *Gradient, width int) []RGBA8 {
	if g == nil || width <= 0 {
		return nil
	}

	span := g.max - g.min
	out := make([]RGBA8, width)
	for x := range out {
		out[x] = g.Color(g.min + (float64(x)/float64(width))*span)
	}
	return out
}
