//go:build !windows

package display

import "errors"

func current() (Geometry, error) {
	return Geometry{}, errors.New("display geometry not available on this platform")
}
