package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `Ти си професор кој создава квиз прашања за ученици од учебнички текст.
Секој одговор треба да биде реална опција, не очевидно погрешна.`

// buildUserMessage embeds the instruction, the excerpt and the reply
// contract in one request.
func buildUserMessage(excerpt string, n int, cfg Config) string {
	f := cfg.ReplyFormat.resolve()
	var b strings.Builder

	fmt.Fprintf(&b, "Од следниот текст (кој може да содржи OCR грешки) генерирај %d прашања за квиз на %s јазик.\n\n", n, cfg.Language)
	b.WriteString("ВАЖНО:\n")
	b.WriteString("- Прашањата треба да тестираат разбирање, не само меморија\n")
	b.WriteString("- Погрешните одговори треба да бидат веродостојни\n")
	b.WriteString("- Секое прашање треба да има точно 4 различни одговори (A, B, C, D)\n\n")

	fmt.Fprintf(&b, "Текст: %s\n\n", excerpt)

	b.WriteString("Формат за секое прашање:\n")
	fmt.Fprintf(&b, "%s 1: [прашање]\n", f.QuestionMarker)
	for _, l := range optionLetters {
		fmt.Fprintf(&b, "%c) [одговор]\n", l)
	}
	fmt.Fprintf(&b, "%s: [A/B/C/D]\n", f.AnswerMarker)

	return b.String()
}

// excerpt cleans chapter text and caps it at limit runes.
func excerpt(content string, limit int) string {
	r := []rune(Normalize(content))
	if len(r) > limit {
		r = r[:limit]
	}
	return string(r)
}
