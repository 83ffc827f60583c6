package responder

import (
	"fmt"
	"strings"

	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/gematria"
)

const (
	RuleDictionary = "dictionary"
	RuleGreeting   = "greeting"
	RuleHelp       = "help"
	RuleGematria   = "gematria"
	RuleHebrew     = "hebrew"
	RuleAnalysis   = "analysis"
)

var (
	greetingKeywords = []string{"oi", "olá", "hello"}
	helpKeywords     = []string{"ajuda", "help"}
	gematriaKeywords = []string{"gematria", "calcular"}
	hebrewKeywords   = []string{"hebraico", "hebrew"}
)

const greetingText = "Shalom! ✡️\n" +
	"Eu sou Elliot IA, seu assistente de gematria e simbolismo.\n" +
	"Como posso ajudá-lo hoje?"

const helpText = "🆘 **Ajuda - Elliot IA**\n\n" +
	"Posso ajudá-lo com:\n" +
	"• Cálculos gemátricos de palavras\n" +
	"• Análise de simbolismo sagrado\n" +
	"• Explicações sobre termos hebraicos/gregos\n" +
	"• Conexões numéricas espirituais\n\n" +
	`Experimente perguntar sobre: "amor", "luz", "sabedoria" ou qualquer palavra que desejar analisar.`

const hebrewText = "📜 **Gematria Hebraica**\n\n" +
	"No sistema hebraico, cada letra tem um valor numérico:\n" +
	"• Aleph (א) = 1\n" +
	"• Beth (ב) = 2\n" +
	"• ... até Tav (ת) = 400\n\n" +
	"*Palavras hebraicas revelam conexões profundas através da gematria.*"

// DictionaryRule answers with the stored meaning when the whole message is a
// dictionary word.
func DictionaryRule(dict dictionary.Dictionary) Rule {
	return Rule{
		Name: RuleDictionary,
		Match: func(msg Message) bool {
			_, ok := dict.Lookup(msg.Text)
			return ok
		},
		Build: func(msg Message) Response {
			entry, _ := dict.Lookup(msg.Text)

			gematriaLine := fmt.Sprintf("**Gematria:** %d", msg.Gematria)
			var canonical *int
			if entry.HasGematria() {
				canonical = entry.Gematria
				gematriaLine += fmt.Sprintf(" (Exato: %d)", *entry.Gematria)
			}

			return Response{
				Kind:              KindDictionary,
				CanonicalGematria: canonical,
				Meaning:           entry.Meaning,
				Text: fmt.Sprintf("🔮 **%s**\n\n📊 %s\n\n📖 **Significado:** %s\n\n💡 %s",
					strings.ToUpper(msg.Text),
					gematriaLine,
					entry.Meaning,
					"*Esta palavra tem profundas conotações espirituais e simbólicas.*",
				),
			}
		},
	}
}

// KeywordRules returns the keyword rules in priority order:
// greeting, help, gematria, hebrew.
func KeywordRules() []Rule {
	return []Rule{
		KeywordRule(RuleGreeting, greetingKeywords, func(Message) string {
			return greetingText
		}),
		KeywordRule(RuleHelp, helpKeywords, func(Message) string {
			return helpText
		}),
		KeywordRule(RuleGematria, gematriaKeywords, func(msg Message) string {
			return "🧮 **Cálculo Gemátrico**\n\n" +
				fmt.Sprintf("A palavra \"%s\" tem gematria **%d**\n\n", msg.Text, msg.Gematria) +
				"**Sistemas disponíveis:**\n" +
				"• Simples Inglês (A=1, B=2... Z=800)\n" +
				"• Hebraico (א=1, ב=2...)\n" +
				"• Grego (α=1, β=2...)\n\n" +
				"*Para análise mais profunda, especifique o sistema desejado.*"
		}),
		KeywordRule(RuleHebrew, hebrewKeywords, func(Message) string {
			return hebrewText
		}),
	}
}

// Analysis is the fallback response: sum, reduction, life path and interpretation.
func Analysis(msg Message) Response {
	reduced := gematria.Reduce(msg.Gematria)
	lifePath := gematria.LifePath(msg.Gematria)
	interpretation := gematria.Interpret(msg.Gematria)

	return Response{
		Kind:           KindAnalysis,
		Rule:           RuleAnalysis,
		Input:          msg.Text,
		Gematria:       msg.Gematria,
		Reduced:        reduced,
		LifePath:       lifePath,
		Interpretation: interpretation,
		Text: "📊 **Análise Gemátrica**\n\n" +
			fmt.Sprintf("A palavra **\"%s\"** possui:\n", msg.Text) +
			fmt.Sprintf("• **Gematria Simples:** %d\n", msg.Gematria) +
			fmt.Sprintf("• **Redução:** %d\n", reduced) +
			fmt.Sprintf("• **Caminho da Vida:** %d\n\n", lifePath) +
			fmt.Sprintf("🔍 **Interpretação:** %s\n\n", interpretation) +
			`*Para análise específica, mencione "hebraico", "grego" ou "redução".*`,
	}
}
