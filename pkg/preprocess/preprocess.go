package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// Size is the edge length of the square model input.
	Size = 32
	// Channels is the channel count of the model input.
	Channels = 1
)

// DefaultMaxPixels rejects decompression bombs before any pixel is decoded.
const DefaultMaxPixels int64 = 178956970

var ErrInvalidImage = errors.New("invalid image")

// Tensor is a model input laid out as NHWC.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// InputShape is the shape every Tensor produced by Preprocess has.
func InputShape() []int64 {
	return []int64{1, Size, Size, Channels}
}

type Option func(*Preprocessor)

// WithFilter sets the resampling filter used for the 32x32 resize.
func WithFilter(filter imaging.ResampleFilter) Option {
	return func(p *Preprocessor) {
		p.filter = filter
	}
}

// WithMaxPixels caps width*height of accepted images. Non-positive values
// keep the default.
func WithMaxPixels(maxPixels int64) Option {
	return func(p *Preprocessor) {
		if maxPixels > 0 {
			p.maxPixels = maxPixels
		}
	}
}

type Preprocessor struct {
	filter    imaging.ResampleFilter
	maxPixels int64
}

// New returns a Preprocessor that resizes with bicubic resampling unless an
// option says otherwise.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		filter:    imaging.CatmullRom,
		maxPixels: DefaultMaxPixels,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFilter maps a config name to a resampling filter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest":
		return imaging.NearestNeighbor, nil
	case "bilinear", "linear":
		return imaging.Linear, nil
	case "", "bicubic":
		return imaging.CatmullRom, nil
	case "lanczos":
		return imaging.Lanczos, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resize filter %q", name)
	}
}

// Preprocess decodes raw image bytes and turns them into a (1,32,32,1)
// tensor with values in [0,1]. Any failure wraps ErrInvalidImage.
func (p *Preprocessor) Preprocess(raw []byte) (tensor *Tensor, err error) {
	defer func() {
		if r := recover(); r != nil {
			tensor = nil
			err = fmt.Errorf("%w: panic during preprocessing: %v", ErrInvalidImage, r)
		}
	}()

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrInvalidImage)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > p.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, p.maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return p.FromImage(img)
}

// FromImage runs the grayscale, resize and normalisation steps on an
// already decoded image.
func (p *Preprocessor) FromImage(img image.Image) (*Tensor, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image bounds %v", ErrInvalidImage, bounds)
	}

	gray := imaging.Grayscale(img)
	dropAlpha(gray)

	resized := imaging.Resize(gray, Size, Size, p.filter)

	data := make([]float32, Size*Size*Channels)
	for y := 0; y < Size; y++ {
		row := resized.Pix[y*resized.Stride:]
		for x := 0; x < Size; x++ {
			// R == G == B after Grayscale.
			data[y*Size+x] = float32(row[x*4]) / 255.0
		}
	}

	return &Tensor{
		Shape: InputShape(),
		Data:  data,
	}, nil
}

// dropAlpha marks every pixel opaque so transparent regions keep their
// stored intensity instead of being weighted out by the resampler.
func dropAlpha(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
