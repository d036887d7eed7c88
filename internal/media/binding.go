package media

import (
	"errors"
	"fmt"
	"strings"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Field names that accept a picked asset.
const (
	FieldURL             = "url"
	FieldBackgroundImage = "backgroundImage"
)

// ErrUnsupportedField is returned when a block type has no media slot under
// the requested field.
var ErrUnsupportedField = errors.New("media: field does not accept media")

// DefaultField returns the media field used when a caller does not name one:
// the figure of image and video blocks, the background of everything else
// that has one.
func DefaultField(t pbblocks.Type) string {
	switch t {
	case pbblocks.TypeImage, pbblocks.TypeVideo:
		return FieldURL
	}
	empty, err := pbblocks.EmptyContent(t)
	if err != nil {
		return ""
	}
	if _, ok := empty.(pbblocks.BackgroundCarrier); ok {
		return FieldBackgroundImage
	}
	return ""
}

// Patch converts a selection into a content patch for field of a block of
// type t. Background selections also switch the background to image mode;
// image selections carry alt text and width when the picker supplied them.
func Patch(t pbblocks.Type, field string, selection interfaces.MediaSelection) (map[string]any, error) {
	url := strings.TrimSpace(selection.URL)
	if url == "" {
		return nil, ErrEmptySelection
	}
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultField(t)
	}

	switch field {
	case FieldBackgroundImage:
		empty, err := pbblocks.EmptyContent(t)
		if err != nil {
			return nil, err
		}
		if _, ok := empty.(pbblocks.BackgroundCarrier); !ok {
			return nil, fmt.Errorf("%w: %s has no background", ErrUnsupportedField, t)
		}
		return map[string]any{
			"backgroundType":  string(pbblocks.BackgroundImage),
			"backgroundImage": url,
		}, nil
	case FieldURL:
		switch t {
		case pbblocks.TypeImage:
			patch := map[string]any{"url": url}
			if alt := strings.TrimSpace(selection.AltText); alt != "" {
				patch["altText"] = alt
			}
			if selection.Width > 0 {
				patch["width"] = selection.Width
			}
			return patch, nil
		case pbblocks.TypeVideo:
			return map[string]any{"url": url}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnsupportedField, t, field)
}
