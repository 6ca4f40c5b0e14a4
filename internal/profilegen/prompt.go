package profilegen

import (
	"fmt"
	"strings"

	"github.com/abhisek/profilecard/internal/profile"
)

const systemPrompt = `You invent fictional people for a profile card demo.

Rules:
- Every person is fictional. Never use the name of a real public figure.
- Use example.com for email domains.
- Interests must be chosen only from the allowed list, with no repeats.
- Write exactly three achievements, one sentence each.
- Keep the biography friendly and in the first person.
- Do not reuse any name from the "recently used" list.`

// buildUserMessage describes the variant's constraints and recent names.
func buildUserMessage(variant profile.Config, priorNames []string, maxPrior int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Allowed interests: %s\n", strings.Join(variant.Pool(), ", "))
	if variant.InterestCount.Min == variant.InterestCount.Max {
		fmt.Fprintf(&b, "Number of interests: exactly %d\n", variant.InterestCount.Min)
	} else {
		fmt.Fprintf(&b, "Number of interests: between %d and %d\n", variant.InterestCount.Min, variant.InterestCount.Max)
	}
	fmt.Fprintf(&b, "Biography: %s\n", aboutInstruction(variant))

	b.WriteString("\nRecently used names:\n")
	b.WriteString(buildPriorNames(priorNames, maxPrior))

	return b.String()
}

func aboutInstruction(variant profile.Config) string {
	sentences := max(variant.AboutSentences, 1)
	if variant.AboutStyle == profile.AboutParagraph {
		return fmt.Sprintf("%d paragraph(s) of about %d sentences", max(variant.AboutParagraphs, 1), sentences)
	}
	return fmt.Sprintf("%d sentence(s)", sentences)
}

// buildPriorNames formats the most recent names, or "None".
func buildPriorNames(names []string, max int) string {
	if len(names) == 0 {
		return "None"
	}
	if max > 0 && len(names) > max {
		names = names[len(names)-max:]
	}

	var b strings.Builder
	for i, n := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, n)
	}
	return strings.TrimRight(b.String(), "\n")
}
