package graphics

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureSpec describes one image asset and how it is uploaded
type TextureSpec struct {
	Path string
	// Sampler is the sampler2D uniform the texture is bound through
	Sampler string
	Format  TextureFormat
	// FlipVertically uploads rows bottom first: the last image row lands at t=0
	// and the first at t=1, so the image appears upright with OpenGL's origin.
	FlipVertically bool
}

// Texture is a 2D texture resident on the device
type Texture struct {
	ID     uint32
	Format TextureFormat
	Width  int
	Height int

	device Device
}

// DecodeImage decodes any registered image format into tightly packed rows of the
// requested format. Colour values are straight (not premultiplied) alpha, as the
// decoder produced them.
func DecodeImage(r io.Reader, format TextureFormat, flip bool) ([]uint8, int, int, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: failed to decode image: %v", ErrResourceLoad, err)
	}

	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	channels := format.Channels()
	rowLen := w * channels
	pixels := make([]uint8, rowLen*h)

	for y := 0; y < h; y++ {
		srcRow := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dstY := y
		if flip {
			dstY = h - 1 - y
		}
		dst := pixels[dstY*rowLen : (dstY+1)*rowLen]
		if channels == 4 {
			copy(dst, srcRow)
			continue
		}
		for x := 0; x < w; x++ {
			copy(dst[x*3:x*3+3], srcRow[x*4:x*4+3])
		}
	}

	return pixels, w, h, nil
}

// LoadTexture decodes the asset at spec.Path and uploads it
func LoadTexture(device Device, spec TextureSpec) (*Texture, error) {
	file, err := os.Open(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open texture file: %v", ErrResourceLoad, err)
	}
	defer file.Close()

	pixels, w, h, err := DecodeImage(file, spec.Format, spec.FlipVertically)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Path, err)
	}

	return &Texture{
		ID:     device.CreateTexture(spec.Format, w, h, pixels),
		Format: spec.Format,
		Width:  w,
		Height: h,
		device: device,
	}, nil
}

// Bind makes the texture current on the given unit
func (t *Texture) Bind(unit uint32) {
	t.device.BindTexture(unit, t.ID)
}

// Delete releases the texture
func (t *Texture) Delete() {
	if t.ID == 0 {
		return
	}
	t.device.DeleteTexture(t.ID)
	t.ID = 0
}
