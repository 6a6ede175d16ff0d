package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// metadataSchema constrains the templates.metadata column. Colour and font
// values end up inside a <style> block, so their character sets are narrow.
const metadataSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "html": {"type": "string"},
    "css": {"type": "string"},
    "colors": {
      "type": "object",
      "additionalProperties": {
        "type": "string",
        "maxLength": 64,
        "pattern": "^(#[0-9A-Fa-f]{3,8}|[A-Za-z]+|rgba?\\([0-9., %]+\\))$"
      }
    },
    "fonts": {
      "type": "object",
      "additionalProperties": {
        "type": "string",
        "maxLength": 200,
        "pattern": "^[A-Za-z0-9 ,'\"._-]+$"
      }
    }
  }
}`

var loadMetadataSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(metadataSchema))
})

// ParseMetadata validates raw template metadata against the metadata schema
// and decodes it. Empty input yields zero metadata and no error.
func ParseMetadata(raw json.RawMessage) (TemplateMetadata, error) {
	var md TemplateMetadata
	if len(raw) == 0 || string(raw) == "null" {
		return md, nil
	}
	schema, err := loadMetadataSchema()
	if err != nil {
		return md, err
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return md, fmt.Errorf("metadata is not valid json: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return md, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return md, err
	}
	return md, nil
}
