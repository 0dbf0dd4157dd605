package chepy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Length returns the number of bytes in the state.
//
// Returns:
//   - int: length of the state.
func (c *Chepy) Length() int {
	return len(c.state)
}

// ToString returns the state as a string.
//
// Returns:
//   - string: the state.
func (c *Chepy) ToString() string {
	return string(c.state)
}

// ToInt parses the state as a base 10 integer.
//
// Returns:
//   - int: the parsed value.
func (c *Chepy) ToInt() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(string(c.state)))
	if err != nil {
		return 0, fmt.Errorf("state is not an integer: %w", err)
	}
	return v, nil
}

// JSONToDict parses a JSON object state into a map.
//
// Returns:
//   - map: the decoded object.
func (c *Chepy) JSONToDict() (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(c.state, &out); err != nil {
		return nil, fmt.Errorf("state is not a JSON object: %w", err)
	}
	return out, nil
}

// CountOccurances counts how often a substring appears in the state.
//
// Args:
//   - needle (string): substring to count.
//   - case_sensitive (bool, optional): compare with case. Defaults to true.
//
// Returns:
//   - int: number of non-overlapping occurrences.
func (c *Chepy) CountOccurances(needle string, caseSensitive bool) int {
	haystack := string(c.state)
	if !caseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}
	if needle == "" {
		return 0
	}
	return strings.Count(haystack, needle)
}
