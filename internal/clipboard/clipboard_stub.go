//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"errors"
	"image"
)

var (
	ErrNoImage     = errors.New("clipboard does not contain image data")
	errUnsupported = errors.New("clipboard image operations are not supported on this platform")
)

func WriteImage(image.Image) error { return errUnsupported }

func ReadImage() (image.Image, error) { return nil, errUnsupported }
