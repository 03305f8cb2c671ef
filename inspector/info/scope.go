package info

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"sort"
	"strings"
)

// Scope holds the variables declared by a play; it is read-only once built
type Scope map[string]interface{}

// Lookup returns the string form of a variable; nil and empty values count as absent
func (s Scope) Lookup(name string) (string, bool) {
	value, ok := s[name]
	if !ok || value == nil {
		return "", false
	}
	text, ok := value.(string)
	if !ok {
		text = fmt.Sprint(value)
	}
	if text == "" {
		return "", false
	}
	return text, true
}

// Names returns sorted variable names
func (s Scope) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the scope as {a: 1, b: x} with sorted keys
func (s Scope) String() string {
	builder := strings.Builder{}
	builder.WriteString("{")
	for i, name := range s.Names() {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(fmt.Sprint(s[name]))
	}
	builder.WriteString("}")
	return builder.String()
}

// Fingerprint hashes the canonical YAML form of the scope (yaml.v3 sorts map keys)
func (s Scope) Fingerprint() (uint64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	data, err := yaml.Marshal(map[string]interface{}(s))
	if err != nil {
		return 0, fmt.Errorf("failed to encode scope: %w", err)
	}
	return Hash(data)
}
