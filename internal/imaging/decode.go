// Package imaging registers the image decoders the viewer understands and
// provides helpers for decoding files from disk.
//
// Registered formats: jpeg, png and gif from the standard library, webp, bmp
// and tiff from golang.org/x/image, and HEIC/HEIF via goheif.
package imaging

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/jdeng/goheif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/iroll/miniviewer/internal/errors"
)

func init() {
	// ISO BMFF files start with a 4-byte box size, so the brand sits at
	// offset 4. The '?' bytes wildcard the size.
	for _, brand := range []string{"heic", "heix", "heif", "mif1", "msf1"} {
		image.RegisterFormat("heif", "????ftyp"+brand, goheif.Decode, goheif.DecodeConfig)
	}
}

// Decoded holds a decoded image along with its source metadata.
type Decoded struct {
	Image  image.Image
	Format string
	Width  int
	Height int
}

// DecodeFile decodes the image at path. Failures come back as a DecodeError
// so callers can report them per file without ending the session.
func DecodeFile(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("cannot open image", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewDecodeError("cannot decode image", path, err)
	}

	bounds := img.Bounds()
	return &Decoded{
		Image:  img,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// Dimensions reads just the image header at path and returns width and height.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.NewFileError("cannot open image", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.NewDecodeError("cannot read image header", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
