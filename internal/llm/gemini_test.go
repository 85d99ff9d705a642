package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string"},
			"level": map[string]any{"type": "integer"},
			"pace":  map[string]any{"type": "string", "enum": []any{"slow", "steady", "fast"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"topic", "level"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["topic"].Type != "STRING" {
		t.Fatalf("expected STRING for topic, got %s", schema.Properties["topic"].Type)
	}
	if schema.Properties["level"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for level, got %s", schema.Properties["level"].Type)
	}
	if len(schema.Properties["pace"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["pace"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_StringRequiredAndItemBounds(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"modules": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": 7,
				"items":    map[string]any{"type": "string"},
			},
		},
		"required": []string{"modules"},
	}

	schema := buildGeminiSchema(def)
	if len(schema.Required) != 1 || schema.Required[0] != "modules" {
		t.Fatalf("required = %v, want [modules]", schema.Required)
	}
	modules := schema.Properties["modules"]
	if modules.MinItems == nil || *modules.MinItems != 5 {
		t.Fatalf("minItems = %v, want 5", modules.MinItems)
	}
	if modules.MaxItems == nil || *modules.MaxItems != 7 {
		t.Fatalf("maxItems = %v, want 7", modules.MaxItems)
	}
}
