package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/breadtasks/breadtasks/types"
)

// YAML renders the export document with the same field names as JSON
var YAML = &DocumentFormat{
	Name:      "yaml",
	Extension: ".yaml",
	Serialize: func(doc *types.ExportDocument) ([]byte, error) {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal export: %w", err)
		}
		return data, nil
	},
}

func init() {
	mustRegister(YAML)
}
