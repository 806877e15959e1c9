// Package dialect defines the keyword vocabularies of the pseudocode
// surface. The parser and serializer never hard-code a keyword; they take a
// Map, so the same pipeline serves the built-in dialects as well as fully
// custom ones loaded from a file.
package dialect

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Map holds the literal keyword for every construct of the pseudocode
// grammar. Matching against these literals is case-insensitive.
type Map struct {
	If       string `yaml:"if"`
	Else     string `yaml:"else"`
	Repeat   string `yaml:"repeat"`
	While    string `yaml:"while"`
	For      string `yaml:"for"`
	Switch   string `yaml:"switch"`
	Case     string `yaml:"case"`
	Default  string `yaml:"default"`
	Function string `yaml:"function"`
	Try      string `yaml:"try"`
	Catch    string `yaml:"catch"`
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
}

// Default is the English keyword set.
var Default = Map{
	If:       "if",
	Else:     "else",
	Repeat:   "repeat",
	While:    "while",
	For:      "for",
	Switch:   "switch",
	Case:     "case",
	Default:  "default",
	Function: "function",
	Try:      "try",
	Catch:    "catch",
	Input:    "input",
	Output:   "output",
}

// German is the alternate built-in keyword set.
var German = Map{
	If:       "wenn",
	Else:     "sonst",
	Repeat:   "wiederhole",
	While:    "solange",
	For:      "zähle",
	Switch:   "wähle",
	Case:     "fall",
	Default:  "sonst",
	Function: "funktion",
	Try:      "versuche",
	Catch:    "fange",
	Input:    "eingabe",
	Output:   "ausgabe",
}

// ByName returns a built-in dialect by name ("default" or "german").
func ByName(name string) (Map, error) {
	switch name {
	case "", "default":
		return Default, nil
	case "german":
		return German, nil
	}
	return Map{}, fmt.Errorf("no built-in dialect named %q", name)
}

// Load reads a custom keyword map from YAML. Every keyword must be present
// and non-empty.
func Load(r io.Reader) (Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Map{}, err
	}
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Map{}, fmt.Errorf("parsing dialect file: %w", err)
	}
	if err := m.check(); err != nil {
		return Map{}, err
	}
	return m, nil
}

func (m Map) check() error {
	for _, kw := range []struct {
		name, value string
	}{
		{"if", m.If}, {"else", m.Else}, {"repeat", m.Repeat},
		{"while", m.While}, {"for", m.For}, {"switch", m.Switch},
		{"case", m.Case}, {"default", m.Default}, {"function", m.Function},
		{"try", m.Try}, {"catch", m.Catch}, {"input", m.Input},
		{"output", m.Output},
	} {
		if kw.value == "" {
			return fmt.Errorf("dialect file is missing the %q keyword", kw.name)
		}
	}
	return nil
}
