package fill

type charClass int

const (
	classOther charClass = iota
	classDigit
	classLetter
	classIdeograph
)

// Ordinal enumerations that count like numbers.
var (
	heavenlyStems    = []string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	chineseNumerals  = []string{"一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}
	stemIndex        = indexOf(heavenlyStems)
	chineseNumeralIx = indexOf(chineseNumerals)
)

func indexOf(symbols []string) map[string]int {
	idx := make(map[string]int, len(symbols))
	for i, s := range symbols {
		idx[s] = i
	}
	return idx
}

func classify(r rune) charClass {
	switch {
	case r >= '0' && r <= '9':
		return classDigit
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return classLetter
	case r >= 0x4e00 && r <= 0x9fa5:
		return classIdeograph
	default:
		return classOther
	}
}

// tokenize splits s into maximal runs of digits, ASCII letters or "other" characters.
// Every CJK ideograph is a token of its own.
func tokenize(s string) []string {
	tokens := make([]string, 0, 4)
	start := 0
	prev := classOther
	for i, r := range s {
		cls := classify(r)
		if i > start && (cls != prev || cls == classIdeograph) {
			tokens = append(tokens, s[start:i])
			start = i
		}
		prev = cls
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

func isLetter(tok string) bool {
	return len(tok) == 1 && classify(rune(tok[0])) == classLetter
}
