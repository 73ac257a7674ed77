package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// TextureLoader decodes png, jpeg, bmp, tiff and webp images into RGBA8
// pixels. Params may be a metadata.ImageResourceParams.
type TextureLoader struct{}

func (tl *TextureLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	file, size, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var p metadata.ImageResourceParams
	switch v := params.(type) {
	case metadata.ImageResourceParams:
		p = v
	case *metadata.ImageResourceParams:
		if v != nil {
			p = *v
		}
	}

	data, err := DecodeTexture(file, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeImage,
		Name:     resourceName(path),
		FullPath: path,
		DataSize: uint64(size),
		Data:     data,
	}, nil
}

func (tl *TextureLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}

// DecodeTexture decodes an image and converts it to tightly packed RGBA8.
func DecodeTexture(r io.Reader, params metadata.ImageResourceParams) (*metadata.ImageResourceData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, core.ErrInvalidInput)
	}
	src := img.Bounds()
	if src.Empty() {
		return nil, fmt.Errorf("image has no pixels: %w", core.ErrInvalidInput)
	}

	width, height := fitSize(src.Dx(), src.Dy(), int(params.MaxSize))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == src.Dx() && height == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.BiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}
	if params.FlipY {
		flipRows(dst)
	}

	return &metadata.ImageResourceData{
		ChannelCount: 4,
		Width:        uint32(width),
		Height:       uint32(height),
		Pixels:       dst.Pix,
	}, nil
}

// fitSize shrinks w x h so that neither side exceeds max, keeping the
// aspect ratio. A max of zero keeps the size.
func fitSize(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}

func flipRows(img *image.RGBA) {
	stride := img.Stride
	rows := img.Rect.Dy()
	tmp := make([]uint8, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*stride : (top+1)*stride]
		b := img.Pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
