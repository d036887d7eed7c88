package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter decodes the YAML front matter of source into meta and
// returns the Markdown body without delimiters. Sources without front matter
// return the whole input as body.
func ParseFrontMatter(source []byte, meta any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(source), meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}
