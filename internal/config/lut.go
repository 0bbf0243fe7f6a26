package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/voxelcore/voxelengine/internal/voxel/geometry"
)

// LUTSchemaPath is the JSON Schema every LUT asset is validated against
// before the engine trusts its shape.
const LUTSchemaPath = "schemas/lut.schema.json"

type lutAsset struct {
	Indices        [][]uint32 `json:"indices"`
	IndicesFlipped [][]uint32 `json:"indices_flipped"`
}

// LoadLUT reads a renderer-supplied LUT asset from assetPath, validates
// it against the JSON Schema at schemaPath, and converts it into a
// geometry.LUT. The engine never interprets the index values
// themselves — schema validation only checks the shape (64 entries,
// non-negative integers) before the untrusted asset is handed to
// geometry.GetIndices.
func LoadLUT(assetPath, schemaPath string) (geometry.LUT, error) {
	var lut geometry.LUT

	raw, err := os.ReadFile(assetPath)
	if err != nil {
		return lut, err
	}

	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return lut, fmt.Errorf("lut schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return lut, fmt.Errorf("lut asset %s: %w", assetPath, err)
	}
	if err := schema.Validate(doc); err != nil {
		return lut, fmt.Errorf("lut asset %s: schema validation: %w", assetPath, err)
	}

	var asset lutAsset
	if err := json.Unmarshal(raw, &asset); err != nil {
		return lut, fmt.Errorf("lut asset %s: %w", assetPath, err)
	}
	for i := 0; i < 64 && i < len(asset.Indices); i++ {
		lut.Indices[i] = asset.Indices[i]
	}
	for i := 0; i < 64 && i < len(asset.IndicesFlipped); i++ {
		lut.IndicesFlipped[i] = asset.IndicesFlipped[i]
	}
	return lut, nil
}

// LoadLUTDefault is LoadLUT(assetPath, LUTSchemaPath); the schema path
// is relative, so it resolves against the working directory.
func LoadLUTDefault(assetPath string) (geometry.LUT, error) {
	return LoadLUT(assetPath, LUTSchemaPath)
}
