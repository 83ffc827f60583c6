package gematria

import (
	"fmt"
	"strings"
	"sync/atomic"
)

const fallbackInterpretation = "Número com significado único a ser explorado"

var interpretations = map[int]string{
	1:  "Início, unidade, origem divina",
	2:  "Dualidade, parceria, equilíbrio",
	3:  "Criação, expressão, trindade",
	4:  "Estabilidade, estrutura, fundamento",
	5:  "Mudança, liberdade, aventura",
	6:  "Harmonia, família, responsabilidade",
	7:  "Espiritualidade, sabedoria, introspecção",
	8:  "Abundância, poder, manifestação",
	9:  "Completude, humanidade, sabedoria",
	11: "Iluminação, intuição, mestrado espiritual",
	22: "Mestre construtor, realização em grande escala",
	33: "Mestre professor, compaixão elevada",
}

// Description returns the symbolic description of value, looking up the
// reduced value first and the raw value second.
func Description(value int) string {
	if d, ok := interpretations[Reduce(value)]; ok {
		return d
	}
	if d, ok := interpretations[value]; ok {
		return d
	}
	return fallbackInterpretation
}

// Interpret composes a sentence with the value, its reduction and description.
func Interpret(value int) string {
	return fmt.Sprintf("O número %d (reduzido a %d) representa %s.",
		value,
		Reduce(value),
		strings.ToLower(Description(value)),
	)
}

// Counter counts gematria calculations for display. It is safe for concurrent use.
// A nil Counter computes without counting.
type Counter struct {
	n atomic.Int64
}

// Sum computes the gematria value of text and records the invocation.
func (c *Counter) Sum(text string) int {
	if c != nil {
		c.n.Add(1)
	}
	return Sum(text)
}

// Count returns how many calculations were recorded.
func (c *Counter) Count() int64 {
	if c == nil {
		return 0
	}
	return c.n.Load()
}
