// Package responder selects the assistant's answer for a chat message.
//
// Selection walks an ordered rule table and the first matching rule builds the
// response. The dictionary rule comes first, then the keyword rules in a fixed
// priority. When nothing matches, a numeric analysis of the message is returned,
// so every input has an answer.
package responder

import (
	"strings"

	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/gematria"
)

// Kind tells which path produced a Response.
type Kind string

const (
	KindDictionary Kind = "dictionary"
	KindKeyword    Kind = "keyword"
	KindAnalysis   Kind = "analysis"
)

// Response is a plain record, so it can be exported as text, JSON or YAML.
type Response struct {
	Kind              Kind   `json:"kind" yaml:"kind"`
	Rule              string `json:"rule" yaml:"rule"`
	Input             string `json:"input" yaml:"input"`
	Text              string `json:"text" yaml:"text"`
	Gematria          int    `json:"gematria" yaml:"gematria"`
	Reduced           int    `json:"reduced,omitempty" yaml:"reduced,omitempty"`
	LifePath          int    `json:"life_path,omitempty" yaml:"life_path,omitempty"`
	CanonicalGematria *int   `json:"canonical_gematria,omitempty" yaml:"canonical_gematria,omitempty"`
	Meaning           string `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Interpretation    string `json:"interpretation,omitempty" yaml:"interpretation,omitempty"`
}

// Message is what a rule sees: the trimmed input, its lowercase form and its
// gematria sum.
type Message struct {
	Text     string
	Lower    string
	Gematria int
}

// Rule pairs a predicate with the builder of its response.
type Rule struct {
	Name  string
	Match func(msg Message) bool
	Build func(msg Message) Response
}

// Selector answers messages. It holds no mutable state apart from the
// optional calculation counter.
type Selector struct {
	rules   []Rule
	counter *gematria.Counter
}

// Option configures a Selector.
type Option func(*Selector)

// WithCounter records each selection's gematria calculation in counter.
func WithCounter(counter *gematria.Counter) Option {
	return func(s *Selector) {
		s.counter = counter
	}
}

// WithRules appends rules after the built-in ones and before the fallback analysis.
func WithRules(rules ...Rule) Option {
	return func(s *Selector) {
		s.rules = append(s.rules, rules...)
	}
}

// NewSelector creates a Selector over a read-only dictionary.
func NewSelector(dict dictionary.Dictionary, opts ...Option) *Selector {
	s := &Selector{
		rules: append([]Rule{DictionaryRule(dict)}, KeywordRules()...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the response for raw input. It never fails.
func (s *Selector) Select(raw string) Response {
	text := strings.TrimSpace(raw)
	msg := Message{
		Text:     text,
		Lower:    strings.ToLower(text),
		Gematria: s.counter.Sum(text),
	}

	for _, rule := range s.rules {
		if !rule.Match(msg) {
			continue
		}
		resp := rule.Build(msg)
		resp.Rule = rule.Name
		resp.Input = msg.Text
		resp.Gematria = msg.Gematria
		return resp
	}
	return Analysis(msg)
}

// Rules returns the names of the rules in evaluation order.
func (s *Selector) Rules() []string {
	names := make([]string, 0, len(s.rules))
	for _, rule := range s.rules {
		names = append(names, rule.Name)
	}
	return names
}

// KeywordRule matches when the lowercase message contains any of keywords.
func KeywordRule(name string, keywords []string, build func(msg Message) string) Rule {
	return Rule{
		Name: name,
		Match: func(msg Message) bool {
			for _, keyword := range keywords {
				if strings.Contains(msg.Lower, keyword) {
					return true
				}
			}
			return false
		},
		Build: func(msg Message) Response {
			return Response{
				Kind: KindKeyword,
				Text: build(msg),
			}
		},
	}
}
