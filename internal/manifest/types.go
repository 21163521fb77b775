package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fixed version and description suffix written into every generated manifest.
const (
	DefaultVersion    = "1.0.0"
	descriptionSuffix = " - React + Cordova project"
)

// Relative subdirectories of the generated project.
const (
	WebDir    = "react"
	NativeDir = "cordova"
)

// Script names, in the order they are written.
const (
	ScriptWebBuild    = "react:build"
	ScriptSync        = "sync:build"
	ScriptNativeBuild = "cordova:build"
	ScriptArtifact    = "move:apk"
	ScriptBuild       = "build"
	ScriptStart       = "start"
)

// Manifest is the root package.json of a generated project.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Scripts         Scripts           `json:"scripts"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// Script is one named npm script.
type Script struct {
	Name    string
	Command string
}

// Scripts is an ordered list of npm scripts. It encodes as a JSON object
// whose keys keep the slice order.
type Scripts []Script

// Get returns the command for the named script.
func (s Scripts) Get(name string) (string, bool) {
	for _, sc := range s {
		if sc.Name == name {
			return sc.Command, true
		}
	}
	return "", false
}

// Names returns the script names in order.
func (s Scripts) Names() []string {
	names := make([]string, len(s))
	for i, sc := range s {
		names[i] = sc.Name
	}
	return names
}

// MarshalJSON encodes the scripts as an object, preserving order.
func (s Scripts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, sc.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, sc.Command); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into scripts in document order.
func (s *Scripts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("scripts: expected object, got %v", tok)
	}

	var out Scripts
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("scripts: expected string key, got %v", tok)
		}
		var command string
		if err := dec.Decode(&command); err != nil {
			return fmt.Errorf("scripts: value of %q: %w", name, err)
		}
		out = append(out, Script{Name: name, Command: command})
	}
	*s = out
	return nil
}

// Marshal encodes the manifest as indented JSON with a trailing newline.
// Shell operators such as "&&" are written literally, not HTML-escaped.
func Marshal(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
