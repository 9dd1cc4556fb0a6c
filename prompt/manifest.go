package prompt

import (
	"bytes"
	"encoding/json"
)

// Manifest is a parsed package.json
type Manifest struct {
	Name            string            `json:"name,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`

	raw json.RawMessage
}

// ParseManifest parses a package.json document. Invalid JSON gives no manifest.
func ParseManifest(raw string) (*Manifest, bool) {
	if raw == "" {
		return nil, false
	}
	var m Manifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, false
	}
	m.raw = json.RawMessage(raw)
	return &m, true
}

// Pretty returns the full document indented by two spaces
func (m *Manifest) Pretty() string {
	if m == nil {
		return ""
	}
	if len(m.raw) == 0 {
		out, _ := json.MarshalIndent(m, "", "  ")
		return string(out)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, m.raw, "", "  "); err != nil {
		return string(m.raw)
	}
	return buf.String()
}
