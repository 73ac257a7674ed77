package metadata

// ImageResourceData is a decoded texture, row major RGBA8.
type ImageResourceData struct {
	ChannelCount uint8
	Width        uint32
	Height       uint32
	Pixels       []uint8
}

// Consistent reports whether Pixels holds exactly Width*Height texels.
func (img *ImageResourceData) Consistent() bool {
	if img == nil || img.Width == 0 || img.Height == 0 {
		return false
	}
	return len(img.Pixels) == int(img.Width)*int(img.Height)*int(img.ChannelCount)
}

/** @brief Options applied while decoding an image. */
type ImageResourceParams struct {
	/** @brief Flip rows so the first row is the bottom of the image. */
	FlipY bool
	/** @brief Bigger images are downscaled to fit. Zero keeps the source size. */
	MaxSize uint32
}
