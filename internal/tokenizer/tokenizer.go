package tokenizer

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

type Tokenizer struct {
	StopWords map[string]bool
	minLength int
	stem      bool
}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		StopWords: defaultStopWords(),
		minLength: 3,
	}
}

// NewStemmingTokenizer folds inflected forms onto their snowball stem.
// Off the default path because word clouds display the raw tokens.
func NewStemmingTokenizer() *Tokenizer {
	t := NewTokenizer()
	t.stem = true
	return t
}

var nonLetter = regexp.MustCompile(`[^a-z\s]`)
var pureNumber = regexp.MustCompile(`^\d+$`)

// Tokenize lowercases the text, blanks every character outside [a-z\s],
// splits on whitespace runs, and drops short tokens, stopwords, and purely
// numeric tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	normalized := nonLetter.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(normalized)

	tokens := make([]string, 0)
	for _, word := range words {
		if len(word) < t.minLength {
			continue
		}
		if t.StopWords[word] {
			continue
		}
		if pureNumber.MatchString(word) {
			continue
		}
		if t.stem {
			word = stemWord(word)
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// TokenizeToFrequency accumulates occurrence counts per surviving token.
func (t *Tokenizer) TokenizeToFrequency(text string) map[string]int {
	result := make(map[string]int)
	for _, token := range t.Tokenize(text) {
		result[token]++
	}
	return result
}

func stemWord(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}

func defaultStopWords() map[string]bool {
	words := []string{
		// Articles, conjunctions, prepositions
		"the", "and", "for", "with", "from", "into", "over", "after",
		"before", "above", "below", "between", "through", "during", "under",
		"again", "further", "then", "once", "here", "there", "any", "while",
		"about", "against", "but", "nor", "not", "only", "own", "same",
		"than", "too", "very", "off", "out", "down", "because", "until",
		"although", "however", "therefore", "thus", "hence", "yet", "still",
		"already", "even", "though", "whether", "since", "unless", "despite",
		"rather", "quite", "per", "across", "around",

		// Pronouns and determiners
		"its", "this", "that", "these", "those", "you", "she", "they",
		"what", "which", "who", "when", "where", "why", "how", "all",
		"each", "every", "both", "few", "more", "most", "other", "some",
		"such", "their", "them", "his", "her", "him", "your", "our",

		// Verbs and auxiliaries
		"was", "are", "were", "been", "have", "has", "had", "does", "did",
		"will", "would", "could", "should", "may", "might", "must", "shall",
		"can", "need", "dare", "ought", "used", "being", "having", "doing",
		"going", "coming", "getting", "making", "taking", "seeing", "think",
		"see", "get", "make", "take", "come", "know", "say", "said",

		// Contraction remnants
		"just", "don", "now", "also", "ain", "aren", "couldn", "didn",
		"doesn", "hadn", "hasn", "haven", "isn", "mightn", "mustn",
		"needn", "shan", "shouldn", "wasn", "weren", "won", "wouldn",

		// Domain noise: generic quantifiers and qualifiers that dominate
		// outlook prose without carrying a view
		"well", "one", "two", "like", "much", "many", "way", "back",
		"first", "last", "long", "new", "old", "high", "low", "good",
		"bad", "best", "worst", "next", "part", "likely", "given",
	}

	stopWords := make(map[string]bool, len(words))
	for _, word := range words {
		stopWords[word] = true
	}
	return stopWords
}
