package testsupport

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-pagebuilder/blocks"
)

// LoadBlocks decodes a JSON array of blocks from path.
func LoadBlocks(path string) ([]blocks.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []blocks.Block
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("testsupport: decode %s: %w", path, err)
	}
	return list, nil
}
