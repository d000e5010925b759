package buffer

import (
	"fmt"
	"math"

	"github.com/echoflaresat/osao/colors"
)

// BlurKernel is the edge length of the box blur applied to the occlusion pass.
const BlurKernel = 9

// Blur applies a size×size uniform box filter. Neighbours are addressed
// modulo width and height (periodic boundary) rather than clamped.
func (img *Image) Blur(size int) {
	if size <= 0 || size%2 == 0 {
		panic(fmt.Sprintf("buffer %q: blur kernel must be odd and positive, got %d", img.Name, size))
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	w, h := img.width, img.height
	weight := 1.0 / float64(size*size)
	half := size / 2

	out := make([]colors.Color4, len(img.data))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := colors.New(0, 0, 0, 1)
			for j := -half; j <= half; j++ {
				yy := wrap(y+j, h)
				for i := -half; i <= half; i++ {
					xx := wrap(x+i, w)
					acc = acc.Add(img.data[xx+yy*w].Scale(weight))
				}
			}
			acc.A = img.data[x+y*w].A
			out[x+y*w] = acc
		}
	}
	img.data = out
	img.touch()
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Invert replaces every pixel with white minus itself; alpha is untouched.
func (img *Image) Invert() {
	img.mu.Lock()
	defer img.mu.Unlock()
	for i, c := range img.data {
		img.data[i] = c.Invert()
	}
	img.touch()
}

// Multiply multiplies img by o channel-wise. Both images must have the same
// dimensions. o is read under its own lock first, so only one buffer lock is
// ever held at a time.
func (img *Image) Multiply(o *Image) {
	ow, oh, other := o.Pixels()

	img.mu.Lock()
	defer img.mu.Unlock()
	if ow != img.width || oh != img.height {
		panic(fmt.Sprintf("buffer %q: multiply by %q with mismatched size %dx%d vs %dx%d",
			img.Name, o.Name, img.width, img.height, ow, oh))
	}
	for i := range img.data {
		img.data[i] = img.data[i].Mul(other[i])
	}
	img.touch()
}

// CopyFrom replaces the contents and dimensions of img with those of o.
func (img *Image) CopyFrom(o *Image) {
	w, h, pix := o.Pixels()

	img.mu.Lock()
	defer img.mu.Unlock()
	img.width, img.height, img.data = w, h, pix
	img.touch()
}

// Normalize stretches each of R, G and B linearly so the observed minimum
// maps to 0 and the maximum to 1. Flat channels are left unchanged.
func (img *Image) Normalize() {
	img.mu.Lock()
	defer img.mu.Unlock()

	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, c := range img.data {
		for ch, v := range [3]float64{c.R, c.G, c.B} {
			lo[ch] = math.Min(lo[ch], v)
			hi[ch] = math.Max(hi[ch], v)
		}
	}

	stretch := func(v float64, ch int) float64 {
		span := hi[ch] - lo[ch]
		if span <= 0 {
			return v
		}
		return colors.Clamp((v-lo[ch])/span, 0, 1)
	}
	for i, c := range img.data {
		img.data[i] = colors.New(stretch(c.R, 0), stretch(c.G, 1), stretch(c.B, 2), c.A)
	}
	img.touch()
}
