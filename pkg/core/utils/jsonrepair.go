package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes common JSON defects in LLM output: single quotes,
// unquoted keys, trailing commas, unclosed brackets, stray code fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// DecodeLenientJSON unmarshals possibly-sloppy JSON into out. It first
// tries strict JSON, then an Hjson read (comments, unquoted strings,
// optional commas), then a repair pass followed by strict JSON.
func DecodeLenientJSON(data string, out interface{}) error {
	if err := json.Unmarshal([]byte(data), out); err == nil {
		return nil
	}
	if err := hjson.Unmarshal([]byte(data), out); err == nil {
		return nil
	}
	repaired, err := RepairJSON(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("JSON_STRUCTURAL_ERROR: %v", err)
	}
	return nil
}
