package eval

import (
	"fmt"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"relic/internal/corpus"
	"relic/internal/dataset"
	"relic/internal/table"
)

// DefaultValidityThreshold is the fuzzy score a best match must reach
// for a quote to count as present in the primary source.
const DefaultValidityThreshold = 90

// ErrNotInPrimarySource annotates rows whose best fuzzy match fell
// under the validity threshold.
const ErrNotInPrimarySource = "model response not found in primary source"

// Options tunes an evaluation pass.
type Options struct {
	ValidityThreshold int
}

func (o Options) threshold() int {
	if o.ValidityThreshold <= 0 {
		return DefaultValidityThreshold
	}
	return o.ValidityThreshold
}

// EvaluateColumn scores one extracted column of the wide table and
// returns the row records plus their aggregate. Quote tasks need a
// reference corpus; line tasks ignore it.
func EvaluateColumn(t *table.Table, examples map[table.Key]dataset.Example, column string, task TaskKind, c *corpus.Corpus, opts Options) ([]Record, Summary, error) {
	if t == nil {
		return nil, Summary{}, fmt.Errorf("evaluate: table is nil")
	}
	if !t.HasColumn(column) {
		return nil, Summary{}, fmt.Errorf("evaluate: table has no column %q", column)
	}
	if task.IsQuote() && c == nil {
		return nil, Summary{}, fmt.Errorf("evaluate: quote task needs a reference corpus")
	}

	records := make([]Record, 0, t.Len())
	for _, key := range t.Keys() {
		example := examples[key]
		extracted := strings.TrimSpace(t.Get(key, column))
		record := Record{
			Key:              key,
			Column:           column,
			Task:             task,
			Extracted:        extracted,
			MatchedIndex:     -1,
			GroundTruthIndex: example.AnswerQuoteIdx,
			HasGroundTruth:   example.HasAnswerIdx,
		}
		if extracted == "" {
			record.Missing = true
			records = append(records, record)
			continue
		}
		if task.IsQuote() {
			scoreQuote(&record, example, c, opts.threshold())
		} else {
			scoreLine(&record, example)
		}
		records = append(records, record)
	}
	return records, Summarize(column, task, records), nil
}

// scoreQuote fuzzy-matches the extracted quote against every sentence
// of the row's book. Validity is best score against the threshold;
// correctness is the best-scoring sentence index against ground truth.
// Ties at the top score break toward the candidate closest to the
// ground-truth index, then toward the lower index, which keeps scoring
// stable across repeated refrains.
func scoreQuote(record *Record, example dataset.Example, c *corpus.Corpus, threshold int) {
	sentences, ok := c.Sentences(record.Key.BookTitle)
	if !ok {
		record.Error = fmt.Sprintf("book %q not in reference corpus", record.Key.BookTitle)
		return
	}
	if len(sentences) == 0 {
		record.Error = fmt.Sprintf("book %q has no sentences", record.Key.BookTitle)
		return
	}

	needle := fuzzy.Cleanse(record.Extracted, false)
	best, bestIdx := -1, -1
	for i, sentence := range sentences {
		score := fuzzy.PartialRatio(fuzzy.Cleanse(sentence, false), needle)
		if score > best {
			best, bestIdx = score, i
			continue
		}
		if score == best && record.HasGroundTruth && closer(i, bestIdx, record.GroundTruthIndex) {
			bestIdx = i
		}
	}

	record.Score = best
	record.MatchedIndex = bestIdx
	record.Valid = best >= threshold
	if !record.Valid {
		record.Error = ErrNotInPrimarySource
	}
	if record.HasGroundTruth {
		record.Correct = bestIdx == record.GroundTruthIndex
	} else if record.Error == "" {
		record.Error = "missing ground-truth index"
	}
	if example.AnswerQuoteText != "" {
		record.LengthRatio = float64(len(record.Extracted)) / float64(len(example.AnswerQuoteText))
		record.HasLengthRatio = true
	}
}

// closer reports whether candidate index i sits strictly nearer the
// ground truth than the current best, preferring the lower index on an
// equal distance.
func closer(i, bestIdx, groundTruth int) bool {
	di, dbest := absInt(i-groundTruth), absInt(bestIdx-groundTruth)
	if di != dbest {
		return di < dbest
	}
	return i < bestIdx
}

// scoreLine scores a line prediction by numeric distance. A prediction
// that does not parse as an integer scores false on all three metrics,
// with the parse failure recorded.
func scoreLine(record *Record, example dataset.Example) {
	predicted, err := strconv.Atoi(record.Extracted)
	if err != nil {
		record.Error = fmt.Sprintf("non-numeric line prediction %q", record.Extracted)
		return
	}
	if !record.HasGroundTruth {
		record.Error = "missing ground-truth index"
		return
	}
	distance := absInt(predicted - example.AnswerQuoteIdx)
	record.Exact = distance == 0
	record.Within5 = distance <= 5
	record.Within20 = distance <= 20
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
