package templates

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
)

func TestExportImportJSON(t *testing.T) {
	original, _ := NewBuiltinCatalog().Get("landing-hero")

	data, err := Export(original)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	for _, key := range []string{"id", "name", "description", "category", "blocks"} {
		if _, ok := record[key]; !ok {
			t.Fatalf("expected %q in exported record: %s", key, data)
		}
	}

	imported, err := Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(imported, original) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", imported, original)
	}
}

func TestExportImportYAML(t *testing.T) {
	original, _ := NewBuiltinCatalog().Get("contact")

	data, err := ExportYAML(original)
	if err != nil {
		t.Fatalf("export yaml: %v", err)
	}
	if !strings.Contains(string(data), "name: Contact section") {
		t.Fatalf("unexpected yaml:\n%s", data)
	}

	imported, err := ImportYAML(data)
	if err != nil {
		t.Fatalf("import yaml: %v", err)
	}
	if !reflect.DeepEqual(imported, original) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", imported, original)
	}
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	cases := map[string]string{
		"malformed":     `{"name":`,
		"missing name":  `{"blocks":[{"type":"hero"}]}`,
		"blank name":    `{"name":"   ","blocks":[{"type":"hero"}]}`,
		"unknown type":  `{"name":"x","blocks":[{"type":"slider"}]}`,
		"extra key":     `{"name":"x","blocks":[],"owner":"me"}`,
		"no blocks":     `{"name":"x","blocks":[]}`,
		"unknown field": `{"name":"x","blocks":[{"type":"hero","content":{"headline":"x"}}]}`,
		"content shape": `{"name":"x","blocks":[{"type":"hero","content":"text"}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Import([]byte(payload)); !errors.Is(err, ErrTemplateInvalid) {
				t.Fatalf("expected ErrTemplateInvalid, got %v", err)
			}
		})
	}
}

func TestImportFillsMissingID(t *testing.T) {
	imported, err := Import([]byte(`{"name":"Pasted section","blocks":[{"type":"spacer","content":{"height":24}}]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.ID == "" {
		t.Fatalf("expected derived id")
	}
	spacer, ok := imported.Blocks[0].Content.(pbblocks.SpacerContent)
	if !ok || spacer.Height != 24 {
		t.Fatalf("unexpected content %#v", imported.Blocks[0].Content)
	}
}
