package mallet

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
)

// parseTopDoc reads the tab-delimited topic-document source into a dense
// document×topic matrix. The first row is a header and is discarded. Each
// data row is: docIndex, label (ignored), then alternating
// (topicIndex, weight) columns. Later pairs for the same (doc, topic)
// overwrite earlier ones.
func parseTopDoc(path string, opts Options) (*mat.Dense, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type pair struct {
		topic  int
		weight float64
	}
	// Keyed by document index: a later row for the same document replaces
	// the earlier row wholly, not pair by pair.
	docs := make(map[int][]pair)
	maxDoc := -1

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	row := 0
	for sc.Scan() {
		row++
		if row == 1 {
			continue // header
		}
		line := sc.Text()
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return nil, rowErr(path, row, line, "fewer than 2 columns", internalerr.ErrMalformedRow)
		}

		doc, err := strconv.Atoi(cols[0])
		if err != nil || doc < 0 {
			return nil, rowErr(path, row, line, fmt.Sprintf("bad document index %q", cols[0]), internalerr.ErrMalformedRow)
		}
		if doc > maxDoc {
			maxDoc = doc
		}

		raw := cols[2:]
		if opts.StrictPairs && len(raw)%2 != 0 {
			return nil, rowErr(path, row, line, "odd number of pair columns", internalerr.ErrMalformedRow)
		}
		// MALLET leaves a trailing unpaired column; by default it is dropped.
		var tops []pair
		for i := 0; i+1 < len(raw); i += 2 {
			topic, err := strconv.Atoi(raw[i])
			if err != nil {
				return nil, rowErr(path, row, line, fmt.Sprintf("bad topic index %q", raw[i]), internalerr.ErrMalformedRow)
			}
			if topic < 0 || topic >= opts.Topics {
				return nil, rowErr(path, row, line, fmt.Sprintf("topic %d not in [0,%d)", topic, opts.Topics), internalerr.ErrTopicIndexOutOfRange)
			}
			weight, err := strconv.ParseFloat(raw[i+1], 64)
			if err != nil {
				return nil, rowErr(path, row, line, fmt.Sprintf("bad weight %q", raw[i+1]), internalerr.ErrMalformedRow)
			}
			tops = append(tops, pair{topic: topic, weight: weight})
		}
		docs[doc] = tops
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if maxDoc < 0 {
		return nil, fmt.Errorf("%s: no document rows: %w", path, internalerr.ErrMalformedRow)
	}

	// Documents are sized to the highest index seen, so gaps in the source's
	// document ids become all-zero rows rather than shifting later rows.
	td := mat.NewDense(maxDoc+1, opts.Topics, nil)
	for doc, tops := range docs {
		for _, p := range tops {
			td.Set(doc, p.topic, p.weight)
		}
	}
	return td, nil
}
