package reminder

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "mem://reminder.schema.json"

// recordSchemaSource describes one stored reminder. Unknown properties are
// allowed so older binaries can read files written by newer ones.
const recordSchemaSource = `{
  "type": "object",
  "required": ["id", "owner", "fire_at"],
  "properties": {
    "id":          {"type": "string", "minLength": 1},
    "owner":       {"type": "string", "minLength": 1},
    "destination": {"type": "string"},
    "text":        {"type": "string"},
    "fire_at":     {"type": "string", "format": "date-time"},
    "timezone":    {"type": "string"},
    "recurrence": {
      "type": ["object", "null"],
      "required": ["kind"],
      "properties": {
        "kind":    {"enum": ["weekly", "monthly"]},
        "weekday": {"type": "integer", "minimum": 0, "maximum": 6},
        "day":     {"type": "integer", "minimum": 1, "maximum": 31},
        "hour":    {"type": "integer", "minimum": 0, "maximum": 23},
        "minute":  {"type": "integer", "minimum": 0, "maximum": 59}
      }
    }
  }
}`

var recordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, strings.NewReader(recordSchemaSource)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})
