package formats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/breadtasks/breadtasks/types"
)

// JSON renders the export document as indented JSON. It is the default
// export format.
var JSON = &DocumentFormat{
	Name:      "json",
	Extension: ".json",
	Serialize: func(doc *types.ExportDocument) ([]byte, error) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal export: %w", err)
		}
		return buf.Bytes(), nil
	},
}

func init() {
	mustRegister(JSON)
}
