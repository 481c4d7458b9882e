package translate

import (
	"fmt"
	"strings"

	"dubber/internal/language"
)

// systemPrompt builds the instruction block for one segment. The prompt keeps
// the model on a bare-translation contract: no commentary, no quotes, no
// romanization, because the output is fed straight to speech synthesis.
func systemPrompt(sourceTag, targetTag string, budgetSeconds float64) string {
	var b strings.Builder

	target := language.DisplayName(targetTag)
	if target == "" {
		target = targetTag
	}

	if source := language.DisplayName(sourceTag); source != "" && sourceTag != language.Auto {
		fmt.Fprintf(&b, "You are a professional dubbing translator. Translate the user's %s dialogue line into %s.\n", source, target)
	} else {
		fmt.Fprintf(&b, "You are a professional dubbing translator. Translate the user's dialogue line into %s.\n", target)
	}

	b.WriteString("Rules:\n")
	b.WriteString("- Output only the translated line, with no quotes, labels, or explanations.\n")
	b.WriteString("- Keep names and numbers as they are spoken.\n")
	b.WriteString("- Preserve the tone and register of the original line.\n")

	if budgetSeconds > 0 {
		fmt.Fprintf(&b, "- The line will be spoken in about %.1f seconds; prefer concise phrasing that fits that time.\n", budgetSeconds)
	}

	if isTraditionalChinese(targetTag) {
		b.WriteString("- Use Traditional Chinese characters exclusively, never Simplified.\n")
		b.WriteString("- Follow Taiwan vocabulary and phrasing conventions.\n")
	}

	return b.String()
}

func isTraditionalChinese(tag string) bool {
	return language.Normalize(tag) == "zh-TW"
}
