package render

import (
	"strconv"
	"strings"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
)

const (
	defaultGradientAngle = 135
	defaultGradientStop  = 100
	backgroundOpacity    = "0.35"
	transparent          = "transparent"
)

// backgroundStyle returns the CSS declarations for a colour background.
// Image backgrounds are drawn by a separate layer, see backgroundLayer.
func backgroundStyle(bg pbblocks.Background) string {
	if bg.BackgroundType != pbblocks.BackgroundColor {
		return ""
	}
	color := cssValue(bg.BackgroundColor, transparent)
	if bg.BackgroundColorMode != pbblocks.ColorGradient {
		return "background-color:" + color + ";"
	}
	angle := clampInt(bg.BackgroundGradientAngle, defaultGradientAngle, 0, 360)
	stop := clampInt(bg.BackgroundGradientStop, defaultGradientStop, 0, 100)
	end := cssValue(bg.BackgroundGradientColor, transparent)
	return "background:linear-gradient(" + strconv.Itoa(angle) + "deg, " +
		color + " 0%, " + end + " " + strconv.Itoa(stop) + "%);"
}

// backgroundLayer returns the absolutely positioned image layer drawn under the
// block content, or "" when the background is not an image.
func backgroundLayer(bg pbblocks.Background) string {
	if bg.BackgroundType != pbblocks.BackgroundImage {
		return ""
	}
	url := strings.TrimSpace(bg.BackgroundImage)
	if url == "" {
		return ""
	}
	return "<div class=\"pb-bg-image\" aria-hidden=\"true\" style=\"background-image:url(&#39;" +
		attr(url) + "&#39;);opacity:" + backgroundOpacity + ";z-index:0\"></div>"
}

func clampInt(value *int, fallback, lo, hi int) int {
	if value == nil {
		return fallback
	}
	v := *value
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cssValue strips characters that would end a declaration or the style
// attribute. Colours are author input but still land inside an attribute.
func cssValue(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	value = strings.Map(func(r rune) rune {
		switch r {
		case ';', '"', '<', '>', '{', '}':
			return -1
		}
		return r
	}, value)
	if value == "" {
		return fallback
	}
	return value
}
