package usecase

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"

	"cafesight-backend/internal/insight/domain"
)

const maxTokensPerReview = 40

// stopwords filters the free-text fallback tokenizer. Topics from the
// sentiment scorer are trusted as-is.
var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "were": {},
	"they": {}, "their": {}, "there": {}, "here": {}, "been": {}, "will": {},
	"would": {}, "could": {}, "should": {}, "about": {}, "just": {}, "very": {},
	"really": {}, "when": {}, "what": {}, "your": {}, "some": {}, "only": {},
	"them": {}, "then": {}, "than": {}, "also": {}, "into": {}, "because": {},
	"which": {}, "while": {},
}

type phraseEntry struct {
	count     int
	firstSeen int
}

type phraseTable struct {
	entries map[string]*phraseEntry
	next    int
}

func newPhraseTable() *phraseTable {
	return &phraseTable{entries: make(map[string]*phraseEntry)}
}

func (t *phraseTable) add(phrase string) {
	if e, ok := t.entries[phrase]; ok {
		e.count++
		return
	}
	t.entries[phrase] = &phraseEntry{count: 1, firstSeen: t.next}
	t.next++
}

// ranked orders by count descending; equal counts keep first-seen order so
// the ranking is a deterministic function of the input.
func (t *phraseTable) ranked() []domain.PhraseCount {
	type keyed struct {
		phrase string
		entry  *phraseEntry
	}
	all := make([]keyed, 0, len(t.entries))
	for phrase, entry := range t.entries {
		all = append(all, keyed{phrase, entry})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].entry.count != all[j].entry.count {
			return all[i].entry.count > all[j].entry.count
		}
		return all[i].entry.firstSeen < all[j].entry.firstSeen
	})

	out := make([]domain.PhraseCount, len(all))
	for i, k := range all {
		out[i] = domain.PhraseCount{Phrase: k.phrase, Count: k.entry.count}
	}
	return out
}

// ExtractThemes builds praise and complaint frequency tables from the
// primary-window review set. It is a pure function of its input.
func ExtractThemes(reviews []domain.Review) domain.Themes {
	praise := newPhraseTable()
	complaint := newPhraseTable()

	for _, review := range reviews {
		if review.Rating == nil {
			continue
		}

		var table *phraseTable
		switch {
		case *review.Rating >= 4:
			table = praise
		case *review.Rating <= 2:
			table = complaint
		case review.SentimentLabel == domain.SentimentPositive:
			table = praise
		case review.SentimentLabel == domain.SentimentNegative:
			table = complaint
		default:
			// rating 3 with neutral or missing sentiment contributes to
			// neither bucket
			continue
		}

		for _, token := range reviewTokens(review) {
			table.add(token)
		}
	}

	return domain.Themes{Praise: praise.ranked(), Complaint: complaint.ranked()}
}

// reviewTokens prefers the scorer's topics; free text is only tokenized when
// no topics are present.
func reviewTokens(review domain.Review) []string {
	if topics := normalizeTopics(review.SentimentTopics); len(topics) > 0 {
		return topics
	}
	return fallbackTokens(review.Text)
}

// normalizeTopics flattens the raw topics JSON to lowercase strings. Accepted
// shapes: an array of strings, an object with a "topics" array, or an
// arbitrary object whose keys are the topics (keys are sorted so the result
// is deterministic).
func normalizeTopics(raw string) []string {
	if raw == "" {
		return nil
	}

	var arr []interface{}
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return stringItems(arr)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil
	}
	if nested, ok := obj["topics"].([]interface{}); ok {
		return stringItems(nested)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func stringItems(items []interface{}) []string {
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// fallbackTokens is the cheap extraction used when the scorer supplied no
// topics: lowercase, strip non-alphanumerics, keep words of length >= 4 that
// are not stopwords, cap per review.
func fallbackTokens(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	var out []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) < 4 {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		out = append(out, word)
		if len(out) >= maxTokensPerReview {
			break
		}
	}
	return out
}
