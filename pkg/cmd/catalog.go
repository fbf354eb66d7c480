package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paygrid/paygrid/pkg/catalog"
	"github.com/paygrid/paygrid/pkg/models"
)

// NewCatalog loads a resource catalog from a JSON file holding an array of
// catalog records. Every record is schema-validated before use.
func NewCatalog(path string) catalog.Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("failed to read catalog file %s: %w", path, err))
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		panic(fmt.Errorf("failed to decode catalog file %s: %w", path, err))
	}

	refs := make([]*models.ResourceRef, 0, len(raw))

	for i, payload := range raw {
		ref, err := catalog.ParseRecord(payload)
		if err != nil {
			panic(fmt.Errorf("invalid catalog record %d in %s: %w", i, path, err))
		}

		refs = append(refs, ref)
	}

	return catalog.NewStatic(refs...)
}
