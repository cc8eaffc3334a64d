// Package window assembles the main window: tabbed page area, completion
// overlay, statusbar and download strip, plus geometry persistence and the
// close-confirmation policy.
package window

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/quellbrowser/quell/internal/ui"
)

// DefaultGeometry is used whenever no valid persisted geometry exists.
var DefaultGeometry = ui.Rect{X: 50, Y: 50, W: 800, H: 600}

const geometryBlobLen = 16

// EncodeGeometry renders a rectangle as the opaque base64 blob stored in the
// state database.
func EncodeGeometry(r ui.Rect) string {
	buf := make([]byte, geometryBlobLen)
	binary.BigEndian.PutUint32(buf[0:], uint32(int32(r.X)))
	binary.BigEndian.PutUint32(buf[4:], uint32(int32(r.Y)))
	binary.BigEndian.PutUint32(buf[8:], uint32(int32(r.W)))
	binary.BigEndian.PutUint32(buf[12:], uint32(int32(r.H)))
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeGeometry parses a stored geometry blob.
func DecodeGeometry(blob string) (ui.Rect, error) {
	buf, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return ui.Rect{}, fmt.Errorf("decode geometry: %w", err)
	}
	if len(buf) != geometryBlobLen {
		return ui.Rect{}, fmt.Errorf("decode geometry: got %d bytes, want %d", len(buf), geometryBlobLen)
	}
	r := ui.Rect{
		X: int(int32(binary.BigEndian.Uint32(buf[0:]))),
		Y: int(int32(binary.BigEndian.Uint32(buf[4:]))),
		W: int(int32(binary.BigEndian.Uint32(buf[8:]))),
		H: int(int32(binary.BigEndian.Uint32(buf[12:]))),
	}
	if r.W <= 0 || r.H <= 0 {
		return ui.Rect{}, fmt.Errorf("decode geometry: non-positive size %dx%d", r.W, r.H)
	}
	return r, nil
}
