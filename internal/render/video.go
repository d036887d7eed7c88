package render

import (
	"net/url"
	"path"
	"strings"
)

type videoKind int

const (
	videoUnsupported videoKind = iota
	videoEmbed
	videoFile
)

// videoSource resolves a user supplied video address into something the
// preview can play. YouTube and Vimeo page links become player embeds; direct
// mp4 and webm files use a native video element.
func videoSource(raw string, autoplay bool) (string, videoKind) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", videoUnsupported
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", videoUnsupported
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtube.com", "youtube-nocookie.com":
		id := u.Query().Get("v")
		if id == "" && strings.HasPrefix(u.Path, "/embed/") {
			id = strings.Trim(strings.TrimPrefix(u.Path, "/embed/"), "/")
		}
		if id == "" {
			return "", videoUnsupported
		}
		return youtubeEmbed(id, autoplay), videoEmbed
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if id == "" {
			return "", videoUnsupported
		}
		return youtubeEmbed(id, autoplay), videoEmbed
	case "vimeo.com", "player.vimeo.com":
		id := path.Base(strings.TrimSuffix(u.Path, "/"))
		if id == "" || id == "." || id == "/" || !isDigits(id) {
			return "", videoUnsupported
		}
		src := "https://player.vimeo.com/video/" + id
		if autoplay {
			src += "?autoplay=1&muted=1"
		}
		return src, videoEmbed
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".mp4", ".webm":
		return raw, videoFile
	}
	return "", videoUnsupported
}

func youtubeEmbed(id string, autoplay bool) string {
	src := "https://www.youtube.com/embed/" + url.PathEscape(id)
	if autoplay {
		src += "?autoplay=1&mute=1"
	}
	return src
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
