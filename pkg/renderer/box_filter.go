package renderer

// Box filter settings used by the renderer. Three passes of a radius-1 box
// approximate a Gaussian blur.
const (
	FilterPasses = 3
	FilterRadius = 1
)

// ApplyBoxFilter blurs src in place with a horizontal then a vertical box
// pass, using scratch (same size) for the intermediate result
func ApplyBoxFilter(src, scratch *FrameBuffer, radius int) {
	ApplyBoxFilterX(src, scratch, radius)
	ApplyBoxFilterY(scratch, src, radius)
}

// ApplyBoxFilterX box-filters every row of src into dst
func ApplyBoxFilterX(src, dst *FrameBuffer, radius int) {
	for y := 0; y < src.Height; y++ {
		boxFilterLine(src.Row(y), dst.Row(y), radius)
	}
}

// ApplyBoxFilterY box-filters every column of src into dst
func ApplyBoxFilterY(src, dst *FrameBuffer, radius int) {
	for x := 0; x < src.Width; x++ {
		boxFilterLine(src.Column(x), dst.Column(x), radius)
	}
}

// boxFilterLine averages a sliding window of 2*radius+1 samples with a
// running sum. Samples beyond either end repeat the edge sample.
func boxFilterLine(src, dst LineView, radius int) {
	n := src.Len()
	if n == 0 {
		return
	}
	scale := 1.0 / float64(2*radius+1)

	// Window centered on 0: radius copies of the first sample stand in for
	// the samples left of the line
	sum := src.At(0).Multiply(float64(radius))
	for k := 0; k <= radius; k++ {
		sum = sum.Add(src.At(min(k, n-1)))
	}
	dst.Set(0, sum.Multiply(scale))

	for i := 1; i < n; i++ {
		sum = sum.Add(src.At(min(i+radius, n-1))).Subtract(src.At(max(i-radius-1, 0)))
		dst.Set(i, sum.Multiply(scale))
	}
}
