package interfaces

import "context"

// MediaRequest tells the picker where the selection will land.
type MediaRequest struct {
	PageID  string
	BlockID string
	// Field is the content key being filled, e.g. "url" or "backgroundImage".
	Field string
}

// MediaSelection is the asset a user picked. Width is zero when unknown.
type MediaSelection struct {
	URL     string
	AltText string
	Width   int
}

// MediaPicker asks the host to let the user choose an asset. ok is false when
// the user cancelled; that is not an error.
type MediaPicker interface {
	PickMedia(ctx context.Context, req MediaRequest) (selection MediaSelection, ok bool, err error)
}
