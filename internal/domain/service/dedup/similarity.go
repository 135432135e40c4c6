package dedup

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const minTokenLen = 2

// Similarity считает косинусную близость TF-IDF векторов двух текстов.
// Словарь и IDF строятся только по этой паре: idf = ln((1+n)/(1+df)) + 1,
// n = 2. Векторы нормируются по L2, результат лежит в [0, 1].
func Similarity(a, b string) float64 {
	tfA := termFrequencies(a)
	tfB := termFrequencies(b)

	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	const docs = 2

	idf := func(term string) float64 {
		df := 0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		return math.Log(float64(1+docs)/float64(1+df)) + 1
	}

	var dot, normA, normB float64

	for term, n := range tfA {
		w := float64(n) * idf(term)
		normA += w * w

		if m, ok := tfB[term]; ok {
			dot += w * float64(m) * idf(term)
		}
	}

	for term, m := range tfB {
		w := float64(m) * idf(term)
		normB += w * w
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// погрешность округления не должна выводить за единицу
	return math.Min(sim, 1)
}

// termFrequencies режет текст на слова из букв, цифр и подчёркиваний длиной
// от двух символов и считает их вхождения без учёта регистра.
func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenLen {
			continue
		}
		tf[w]++
	}

	return tf
}
