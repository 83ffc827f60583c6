package responder

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/gematria"
)

func intPtr(v int) *int {
	return &v
}

func newTestSelector(opts ...Option) *Selector {
	dict := dictionary.New(map[string]dictionary.Entry{
		"luz":    {Meaning: "Or, a primeira criação", Gematria: intPtr(207)},
		"amor":   {Meaning: "Ahavah"},
		"oi":     {Meaning: "Saudação informal"},
		"hebrew": {Meaning: "Ivrit"},
	})
	return NewSelector(dict, opts...)
}

func TestSelector_Select(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantKind     Kind
		wantRule     string
		wantGematria int
		wantContains []string
	}{
		{
			name:         "dictionary hit ignores case and surrounding spaces",
			input:        "Luz ",
			wantKind:     KindDictionary,
			wantRule:     RuleDictionary,
			wantGematria: 1130,
			wantContains: []string{"🔮 **LUZ**", "📊 **Gematria:** 1130 (Exato: 207)", "📖 **Significado:** Or, a primeira criação"},
		},
		{
			name:         "dictionary entry without canonical value",
			input:        "amor",
			wantKind:     KindDictionary,
			wantRule:     RuleDictionary,
			wantGematria: 191,
			wantContains: []string{"**AMOR**", "**Gematria:** 191\n"},
		},
		{
			name:         "dictionary wins over a keyword with the same text",
			input:        "OI",
			wantKind:     KindDictionary,
			wantRule:     RuleDictionary,
			wantGematria: 69,
		},
		{
			name:         "greeting wins over later keyword sets",
			input:        "oi, me ajuda com gematria",
			wantKind:     KindKeyword,
			wantRule:     RuleGreeting,
			wantContains: []string{"Shalom! ✡️\n", "Eu sou Elliot IA"},
		},
		{
			name:         "greeting in english",
			input:        "Hello there",
			wantKind:     KindKeyword,
			wantRule:     RuleGreeting,
		},
		{
			name:         "help",
			input:        "preciso de ajuda",
			wantKind:     KindKeyword,
			wantRule:     RuleHelp,
			wantContains: []string{"🆘 **Ajuda - Elliot IA**", "Cálculos gemátricos"},
		},
		{
			name:         "help wins over gematria",
			input:        "help with gematria",
			wantKind:     KindKeyword,
			wantRule:     RuleHelp,
		},
		{
			name:         "gematria template interpolates message and sum",
			input:        "calcular sabedoria",
			wantKind:     KindKeyword,
			wantRule:     RuleGematria,
			wantGematria: gematria.Sum("calcular sabedoria"),
			wantContains: []string{"🧮 **Cálculo Gemátrico**", `A palavra "calcular sabedoria" tem gematria **` + itoa(gematria.Sum("calcular sabedoria")) + `**`},
		},
		{
			name:         "hebrew",
			input:        "Gematria no sistema HEBRAICO",
			wantKind:     KindKeyword,
			wantRule:     RuleGematria,
		},
		{
			name:         "hebrew only",
			input:        "letras em hebraico",
			wantKind:     KindKeyword,
			wantRule:     RuleHebrew,
			wantContains: []string{"📜 **Gematria Hebraica**", "Aleph (א) = 1", "Tav (ת) = 400"},
		},
		{
			name:         "generic analysis",
			input:        "sabedoria divina",
			wantKind:     KindAnalysis,
			wantRule:     RuleAnalysis,
			wantGematria: gematria.Sum("sabedoria divina"),
			wantContains: []string{"📊 **Análise Gemátrica**", "🔍 **Interpretação:** ", `A palavra **"sabedoria divina"** possui:`},
		},
		{
			name:         "empty input falls through to analysis of zero",
			input:        "   ",
			wantKind:     KindAnalysis,
			wantRule:     RuleAnalysis,
			wantGematria: 0,
			wantContains: []string{"• **Gematria Simples:** 0", "representa número com significado único a ser explorado."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSelector()
			got := s.Select(tt.input)

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantRule, got.Rule)
			assert.Equal(t, strings.TrimSpace(tt.input), got.Input)
			assert.Equal(t, gematria.Sum(tt.input), got.Gematria)
			if tt.wantGematria != 0 {
				assert.Equal(t, tt.wantGematria, got.Gematria)
			}
			for _, want := range tt.wantContains {
				assert.Contains(t, got.Text, want)
			}
		})
	}
}

func TestSelector_DictionaryResponseFields(t *testing.T) {
	got := newTestSelector().Select("luz")

	require.NotNil(t, got.CanonicalGematria)
	assert.Equal(t, 207, *got.CanonicalGematria)
	assert.Equal(t, "Or, a primeira criação", got.Meaning)
	assert.Zero(t, got.Reduced)
}

func TestSelector_AnalysisFields(t *testing.T) {
	got := newTestSelector().Select("test")

	// T200 + E5 + S100 + T200
	assert.Equal(t, 505, got.Gematria)
	assert.Equal(t, 1, got.Reduced)
	assert.Equal(t, 1, got.LifePath)
	assert.Equal(t, "O número 505 (reduzido a 1) representa início, unidade, origem divina.", got.Interpretation)
	assert.Contains(t, got.Text, "• **Redução:** 1\n")
	assert.Contains(t, got.Text, "• **Caminho da Vida:** 1\n")
}

func TestSelector_Idempotent(t *testing.T) {
	s := newTestSelector()
	for _, input := range []string{"luz", "oi", "qualquer coisa", "calcular"} {
		assert.Equal(t, s.Select(input), s.Select(input), input)
	}
}

func TestSelector_Counter(t *testing.T) {
	var counter gematria.Counter
	s := newTestSelector(WithCounter(&counter))

	s.Select("luz")
	s.Select("oi")
	s.Select("texto livre")

	assert.Equal(t, int64(3), counter.Count())
}

func TestSelector_WithRules(t *testing.T) {
	greek := KeywordRule("greek", []string{"grego", "greek"}, func(msg Message) string {
		return "Alfa (α) = 1"
	})
	s := newTestSelector(WithRules(greek))

	assert.Equal(t, []string{RuleDictionary, RuleGreeting, RuleHelp, RuleGematria, RuleHebrew, "greek"}, s.Rules())

	got := s.Select("sistema grego")
	assert.Equal(t, "greek", got.Rule)
	assert.Equal(t, KindKeyword, got.Kind)
	assert.Equal(t, "Alfa (α) = 1", got.Text)

	// built-in keyword sets keep their priority
	assert.Equal(t, RuleHelp, s.Select("ajuda grego").Rule)
}

func TestResponse_JSONRoundTrip(t *testing.T) {
	want := newTestSelector().Select("luz")

	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got Response
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
