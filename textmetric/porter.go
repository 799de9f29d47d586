package textmetric

import "strings"

// porterStem applies the Porter stemming algorithm to a lowercase ASCII word.
func porterStem(word string) string {
	if len(word) <= 2 {
		return word
	}
	word = step1a(word)
	word = step1b(word)
	word = step1c(word)
	word = step2(word)
	word = step3(word)
	word = step4(word)
	word = step5(word)
	return word
}

// isCons reports whether the character at i is a consonant. 'y' is a
// consonant at position 0 or after a vowel.
func isCons(w string, i int) bool {
	switch w[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		if i == 0 {
			return true
		}
		return !isCons(w, i-1)
	default:
		return true
	}
}

// measure counts the number of vowel-consonant sequences in the word,
// the m of the form [C](VC){m}[V].
func measure(w string) int {
	n, i := 0, 0
	for i < len(w) && isCons(w, i) {
		i++
	}
	for i < len(w) {
		for i < len(w) && !isCons(w, i) {
			i++
		}
		if i >= len(w) {
			break
		}
		n++
		for i < len(w) && isCons(w, i) {
			i++
		}
	}
	return n
}

// hasVowel reports whether the word contains at least one vowel.
func hasVowel(w string) bool {
	for i := range w {
		if !isCons(w, i) {
			return true
		}
	}
	return false
}

// endsDoubleCons reports whether the word ends in a doubled consonant.
func endsDoubleCons(w string) bool {
	n := len(w)
	return n >= 2 && w[n-1] == w[n-2] && isCons(w, n-1)
}

// endsCVC reports whether the word ends consonant-vowel-consonant where the
// final consonant is not w, x or y.
func endsCVC(w string) bool {
	n := len(w)
	if n < 3 {
		return false
	}
	if !isCons(w, n-3) || isCons(w, n-2) || !isCons(w, n-1) {
		return false
	}
	switch w[n-1] {
	case 'w', 'x', 'y':
		return false
	}
	return true
}

func step1a(w string) string {
	switch {
	case strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ies"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ss"):
		return w
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

func step1b(w string) string {
	if strings.HasSuffix(w, "eed") {
		if measure(w[:len(w)-3]) > 0 {
			return w[:len(w)-1]
		}
		return w
	}
	var stem string
	switch {
	case strings.HasSuffix(w, "ed") && hasVowel(w[:len(w)-2]):
		stem = w[:len(w)-2]
	case strings.HasSuffix(w, "ing") && hasVowel(w[:len(w)-3]):
		stem = w[:len(w)-3]
	default:
		return w
	}
	switch {
	case strings.HasSuffix(stem, "at"), strings.HasSuffix(stem, "bl"), strings.HasSuffix(stem, "iz"):
		return stem + "e"
	case endsDoubleCons(stem):
		switch stem[len(stem)-1] {
		case 'l', 's', 'z':
			return stem
		}
		return stem[:len(stem)-1]
	case measure(stem) == 1 && endsCVC(stem):
		return stem + "e"
	}
	return stem
}

func step1c(w string) string {
	if strings.HasSuffix(w, "y") && hasVowel(w[:len(w)-1]) {
		return w[:len(w)-1] + "i"
	}
	return w
}

// suffixRule rewrites one suffix to another when the remaining stem has
// positive measure.
type suffixRule struct {
	suffix      string
	replacement string
}

var step2Rules = []suffixRule{
	{"ational", "ate"}, {"ization", "ize"}, {"iveness", "ive"},
	{"fulness", "ful"}, {"ousness", "ous"}, {"biliti", "ble"},
	{"tional", "tion"}, {"ation", "ate"}, {"alism", "al"},
	{"aliti", "al"}, {"iviti", "ive"}, {"ousli", "ous"},
	{"entli", "ent"}, {"enci", "ence"}, {"anci", "ance"},
	{"izer", "ize"}, {"abli", "able"}, {"alli", "al"},
	{"ator", "ate"}, {"eli", "e"},
}

var step3Rules = []suffixRule{
	{"icate", "ic"}, {"ative", ""}, {"alize", "al"},
	{"iciti", "ic"}, {"ical", "ic"}, {"ness", ""}, {"ful", ""},
}

func applyRules(w string, rules []suffixRule) string {
	for _, rule := range rules {
		if !strings.HasSuffix(w, rule.suffix) {
			continue
		}
		stem := w[:len(w)-len(rule.suffix)]
		if measure(stem) > 0 {
			return stem + rule.replacement
		}
		return w
	}
	return w
}

func step2(w string) string {
	return applyRules(w, step2Rules)
}

func step3(w string) string {
	return applyRules(w, step3Rules)
}

// step4Suffixes are checked longest first so "ement" wins over "ment" and "ent".
var step4Suffixes = []string{
	"ement", "ance", "ence", "able", "ible", "ment",
	"ant", "ent", "ion", "ism", "ate", "iti", "ous", "ive", "ize",
	"al", "er", "ic", "ou",
}

func step4(w string) string {
	for _, suffix := range step4Suffixes {
		if !strings.HasSuffix(w, suffix) {
			continue
		}
		stem := w[:len(w)-len(suffix)]
		if measure(stem) <= 1 {
			return w
		}
		// "ion" only drops after s or t.
		if suffix == "ion" && !strings.HasSuffix(stem, "s") && !strings.HasSuffix(stem, "t") {
			return w
		}
		return stem
	}
	return w
}

func step5(w string) string {
	if strings.HasSuffix(w, "e") {
		stem := w[:len(w)-1]
		m := measure(stem)
		if m > 1 || (m == 1 && !endsCVC(stem)) {
			w = stem
		}
	}
	if measure(w) > 1 && endsDoubleCons(w) && strings.HasSuffix(w, "l") {
		w = w[:len(w)-1]
	}
	return w
}
