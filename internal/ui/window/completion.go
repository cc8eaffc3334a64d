package window

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quellbrowser/quell/internal/ui"
)

const statusBarHeight = 24

// CompletionGeometry computes the completion overlay's rectangle for the
// given window size. height is the configured value: an absolute pixel
// count ("300") or a percentage of the window height ("50%"). With shrink
// set, the overlay shrinks to its content. The result is clamped to the
// space above the statusbar; clamping is not an error.
func CompletionGeometry(win ui.Rect, height string, shrink bool, contentHeight int) (ui.Rect, error) {
	h, err := resolveHeight(height, win.H)
	if err != nil {
		return ui.Rect{}, err
	}
	if shrink && contentHeight >= 0 && contentHeight < h {
		h = contentHeight
	}
	if max := win.H - statusBarHeight; h > max {
		h = max
	}
	if h < 0 {
		h = 0
	}
	return ui.Rect{
		X: 0,
		Y: win.H - statusBarHeight - h,
		W: win.W,
		H: h,
	}, nil
}

func resolveHeight(setting string, winHeight int) (int, error) {
	setting = strings.TrimSpace(setting)
	if pct, ok := strings.CutSuffix(setting, "%"); ok {
		p, err := strconv.Atoi(pct)
		if err != nil || p < 0 || p > 100 {
			return 0, fmt.Errorf("completion height: invalid percentage %q", setting)
		}
		// Overflow-safe: the intermediate product is computed in 64 bits.
		h := int64(winHeight) * int64(p) / 100
		if h > math.MaxInt32 {
			h = math.MaxInt32
		}
		return int(h), nil
	}
	h, err := strconv.Atoi(setting)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("completion height: invalid value %q", setting)
	}
	return h, nil
}
