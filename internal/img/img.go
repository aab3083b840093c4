// Package img produces the raster outputs of a build: fixed-size thumbnails
// and the social-media card, scaled from the target's screenshot.
package img

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

var ErrImage = errors.New("image generation failed")

// Scales the PNG at srcPath to width x height and writes it to destPath.
//
// Aspect ratio is not preserved; the published thumbnail dimensions are
// fixed and the screenshots are produced at a matching ratio.
func Resize(srcPath, destPath string, width, height int) error {
	src, err := loadPNG(srcPath)
	if err != nil {
		return err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return writePNG(destPath, dst)
}

// Renders the social card: the screenshot scaled to fit the card height,
// centered over a solid background.
func SocialCard(srcPath, destPath string, width, height int) error {
	src, err := loadPNG(srcPath)
	if err != nil {
		return err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	// Fit the screenshot inside the card, preserving its aspect ratio.
	sb := src.Bounds()
	w := width
	h := w * sb.Dy() / sb.Dx()
	if h > height {
		h = height
		w = h * sb.Dx() / sb.Dy()
	}
	x0 := (width - w) / 2
	y0 := (height - h) / 2
	target := image.Rect(x0, y0, x0+w, y0+h)
	draw.CatmullRom.Scale(dst, target, src, sb, draw.Over, nil)

	return writePNG(destPath, dst)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImage, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImage, path, err)
	}
	return src, nil
}

func writePNG(path string, m image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImage, err)
	}

	if err := png.Encode(f, m); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrImage, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrImage, err)
	}
	return nil
}
