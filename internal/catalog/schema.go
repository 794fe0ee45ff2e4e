package catalog

// catalogSchema is the JSON schema every catalog document must satisfy.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"format_version": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"welcome_message": map[string]any{"type": "string"},
		"final_message":   map[string]any{"type": "string"},
		"exercises": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":    "string",
						"pattern": "^[A-Za-z0-9_-]+$",
					},
					"dir": map[string]any{
						"type":    "string",
						"pattern": "^[A-Za-z0-9_-]+(/[A-Za-z0-9_-]+)*$",
					},
					"mode": map[string]any{
						"type": "string",
						"enum": []any{"run", "test", "build"},
					},
					"hint": map[string]any{"type": "string"},
				},
				"required":             []any{"name", "mode"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"format_version", "exercises"},
	"additionalProperties": false,
}
