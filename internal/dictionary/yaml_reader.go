package dictionary

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default_dictionary.yml
var defaultDictionary []byte

var entryValidator = validator.New()

// Default returns the dictionary shipped with the binary.
func Default() (Dictionary, error) {
	dict, err := ParseYAML(defaultDictionary)
	if err != nil {
		return Dictionary{}, fmt.Errorf("parse embedded dictionary: %w", err)
	}
	return dict, nil
}

// ReadYAMLFile reads a YAML mapping of word to entry.
func ReadYAMLFile(path string) (Dictionary, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	dict, err := ParseYAML(contents)
	if err != nil {
		return Dictionary{}, fmt.Errorf("ParseYAML(%s) > %w", path, err)
	}
	return dict, nil
}

// ParseYAML decodes and validates a YAML mapping of word to entry.
func ParseYAML(contents []byte) (Dictionary, error) {
	var entries map[string]Entry
	if err := yaml.Unmarshal(contents, &entries); err != nil {
		return Dictionary{}, fmt.Errorf("yaml.Unmarshal > %w", err)
	}

	var problems []string
	for _, word := range sortedWords(entries) {
		entry := entries[word]
		if strings.TrimSpace(word) == "" {
			problems = append(problems, "empty word")
			continue
		}
		if err := entryValidator.Struct(entry); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", word, err))
		}
	}
	problems = append(problems, Duplicates(entries)...)
	if len(problems) > 0 {
		return Dictionary{}, fmt.Errorf("invalid dictionary entries: %s", strings.Join(problems, "; "))
	}
	return New(entries), nil
}

// WriteYAMLFile writes the dictionary as a YAML mapping.
func WriteYAMLFile(path string, dict Dictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	enc.SetIndent(2)
	if err := enc.Encode(dict.Entries()); err != nil {
		return fmt.Errorf("yaml.Encode > %w", err)
	}
	return nil
}
