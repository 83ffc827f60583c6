// Package chat keeps the state of one assistant conversation: the transcript,
// the welcome turn, the counters shown in the sidebar and the quick calculator.
package chat

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/gematria"
	"github.com/elliot-ia/elliot/internal/responder"
)

const (
	AssistantName = "Elliot IA"
	WelcomeText   = "Olá! Eu sou o Elliot IA, seu assistente de gematria e simbolismo. " +
		"Envie uma palavra para ver sua análise gemátrica ou pergunte sobre gematria hebraica."
)

var (
	ErrEmptyMessage    = errors.New("chat: message is empty")
	ErrEmptyTranscript = errors.New("chat: transcript is already empty")
)

var hints = []string{
	"Digite 'amor' para ver análise gemátrica",
	"Experimente 'luz' ou 'sabedoria'",
	"Pergunte sobre 'gematria hebraica'",
	"Use a calculadora para cálculos rápidos",
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Turn is one message of the transcript.
type Turn struct {
	Sender    Sender              `json:"sender" yaml:"sender"`
	Text      string              `json:"text" yaml:"text"`
	Time      time.Time           `json:"time" yaml:"time"`
	TimeLabel string              `json:"time_label" yaml:"time_label"`
	Welcome   bool                `json:"welcome,omitempty" yaml:"welcome,omitempty"`
	Response  *responder.Response `json:"response,omitempty" yaml:"response,omitempty"`
}

// Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	dict     dictionary.Dictionary
	selector *responder.Selector
	counter  *gematria.Counter
	turns    []Turn
	now      func() time.Time
	random   *rand.Rand
	rules    []responder.Rule
	welcome  string
}

type Option func(*Session)

// WithClock replaces time.Now for turn timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithRandom sets the source used to pick hints.
func WithRandom(r *rand.Rand) Option {
	return func(s *Session) {
		s.random = r
	}
}

// WithRules adds rules to the response selector.
func WithRules(rules ...responder.Rule) Option {
	return func(s *Session) {
		s.rules = append(s.rules, rules...)
	}
}

// WithWelcome replaces the welcome text. An empty text disables the welcome turn.
func WithWelcome(text string) Option {
	return func(s *Session) {
		s.welcome = text
	}
}

// NewSession starts a conversation over dict, seeded with the welcome turn.
func NewSession(dict dictionary.Dictionary, opts ...Option) *Session {
	s := &Session{
		dict:    dict,
		counter: &gematria.Counter{},
		now:     time.Now,
		random:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		welcome: WelcomeText,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.selector = responder.NewSelector(dict,
		responder.WithCounter(s.counter),
		responder.WithRules(s.rules...),
	)
	if s.welcome != "" {
		s.append(Turn{Sender: SenderAssistant, Text: s.welcome, Welcome: true})
	}
	return s
}

func (s *Session) append(turn Turn) Turn {
	now := s.now()
	turn.Time = now
	turn.TimeLabel = now.Format("15:04")
	s.turns = append(s.turns, turn)
	return turn
}

// Send records the user message and the assistant's answer.
func (s *Session) Send(message string) (responder.Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return responder.Response{}, ErrEmptyMessage
	}

	s.append(Turn{Sender: SenderUser, Text: message})
	resp := s.selector.Select(message)
	s.append(Turn{Sender: SenderAssistant, Text: resp.Text, Response: &resp})
	return resp, nil
}

// Clear removes every turn except the welcome turn.
func (s *Session) Clear() (int, error) {
	kept := make([]Turn, 0, 1)
	for _, turn := range s.turns {
		if turn.Welcome {
			kept = append(kept, turn)
		}
	}
	removed := len(s.turns) - len(kept)
	if removed == 0 {
		return 0, ErrEmptyTranscript
	}
	s.turns = kept
	return removed, nil
}

// Turns returns a copy of the transcript in insertion order.
func (s *Session) Turns() []Turn {
	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// MessageCount counts the user turns.
func (s *Session) MessageCount() int {
	count := 0
	for _, turn := range s.turns {
		if turn.Sender == SenderUser {
			count++
		}
	}
	return count
}

// CalculationCount counts gematria calculations of this session.
func (s *Session) CalculationCount() int64 {
	return s.counter.Count()
}

// DictionaryWords is the size of the loaded dictionary.
func (s *Session) DictionaryWords() int {
	return s.dict.Len()
}

// Hint returns one of the example prompts shown under the welcome turn.
func (s *Session) Hint() string {
	return hints[s.random.IntN(len(hints))]
}

// CalculatorResult is the answer of the quick calculator.
type CalculatorResult struct {
	Word     string            `json:"word"`
	Gematria int               `json:"gematria"`
	Entry    *dictionary.Entry `json:"entry,omitempty"`
	Text     string            `json:"text"`
}

// Calculate computes the gematria of a single word and adds its dictionary
// meaning when there is one. It does not touch the transcript.
func (s *Session) Calculate(word string) CalculatorResult {
	word = strings.TrimSpace(word)
	if word == "" {
		return CalculatorResult{Text: "Digite uma palavra..."}
	}

	result := CalculatorResult{
		Word:     word,
		Gematria: s.counter.Sum(word),
	}
	lines := []string{fmt.Sprintf("%q = %d (Gematria Simples)", word, result.Gematria)}
	if entry, ok := s.dict.Lookup(word); ok {
		result.Entry = &entry
		lines = append(lines, "📖 Significado: "+entry.Meaning)
		if entry.HasGematria() {
			lines = append(lines, fmt.Sprintf("🔢 Gematria exata: %d", *entry.Gematria))
		}
	} else {
		lines = append(lines, "💡 Dica: Esta palavra não está no dicionário.")
	}
	result.Text = strings.Join(lines, "\n")
	return result
}
