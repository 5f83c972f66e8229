// Package sentiment оценивает тональность текста по словарю AFINN со стеммингом.
package sentiment

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/kljensen/snowball"
)

const (
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelPositive = "positive"

	// positiveThreshold — оценка строго выше порога считается позитивной.
	positiveThreshold = 0.33
)

// ErrEmptySentence — пустой текст не анализируется.
var ErrEmptySentence = errors.New("no sentence provided")

//go:embed afinn.tsv
var afinnTSV []byte

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nor": {},
	"none": {}, "nobody": {}, "nothing": {}, "nowhere": {},
}

// Analyzer — словарный анализатор. Безопасен для конкурентного использования после создания.
type Analyzer struct {
	language   string
	vocabulary map[string]float64
	stemmed    map[string]float64
}

// NewAnalyzer загружает встроенный словарь AFINN и строит стеммированную копию для language.
func NewAnalyzer(language string) (*Analyzer, error) {
	vocab, err := parseLexicon(afinnTSV)
	if err != nil {
		return nil, err
	}
	return newAnalyzer(language, vocab)
}

// NewAnalyzerFromFile читает словарь в формате AFINN (слово<TAB>вес) из path,
// например полный AFINN-en-165.txt.
func NewAnalyzerFromFile(language, path string) (*Analyzer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	vocab, err := parseLexicon(data)
	if err != nil {
		return nil, err
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("lexicon %s is empty", path)
	}
	return newAnalyzer(language, vocab)
}

func newAnalyzer(language string, vocab map[string]float64) (*Analyzer, error) {
	a := &Analyzer{
		language:   language,
		vocabulary: vocab,
		stemmed:    make(map[string]float64, len(vocab)),
	}
	for _, word := range slices.Sorted(maps.Keys(vocab)) {
		weight := vocab[word]
		stem, err := snowball.Stem(word, language, true)
		if err != nil {
			return nil, fmt.Errorf("stem %q: %w", word, err)
		}
		// при коллизии стемов берём вес слова, совпадающего со стемом
		if _, seen := a.stemmed[stem]; seen && stem != word {
			continue
		}
		a.stemmed[stem] = weight
	}
	return a, nil
}

// Score возвращает сумму весов слов, делённую на число слов.
// Слово-отрицание меняет знак всех последующих весов.
func (a *Analyzer) Score(sentence string) (float64, error) {
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return 0, ErrEmptySentence
	}

	score := 0.0
	negator := 1.0
	for _, w := range words {
		token := strings.ToLower(w)
		if _, ok := negations[token]; ok {
			negator = -1
			continue
		}
		if weight, ok := a.vocabulary[token]; ok {
			score += negator * weight
			continue
		}
		stem, err := snowball.Stem(token, a.language, true)
		if err != nil {
			return 0, fmt.Errorf("stem %q: %w", token, err)
		}
		if weight, ok := a.stemmed[stem]; ok {
			score += negator * weight
		}
	}
	return score / float64(len(words)), nil
}

// Label раскладывает оценку по трём корзинам.
func Label(score float64) string {
	switch {
	case score < 0:
		return LabelNegative
	case score > positiveThreshold:
		return LabelPositive
	default:
		return LabelNeutral
	}
}

func parseLexicon(data []byte) (map[string]float64, error) {
	vocab := make(map[string]float64, 512)
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		word, weight, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("lexicon line %d: missing tab", line)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		vocab[strings.TrimSpace(word)] = w
	}
	return vocab, sc.Err()
}
