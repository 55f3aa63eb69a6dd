package mallet

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
)

// parseWordTop reads the space-delimited word-topic counts source into a
// topic×word matrix and row-normalizes it. A row is: wordIndex, label
// (ignored), then "topicIndex:count" tokens. Word columns are assigned by
// first appearance; duplicate rows for one word index share a column.
func parseWordTop(path string, opts Options) (*mat.Dense, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type cell struct {
		topic, col int
		count      float64
	}
	var cells []cell
	columns := make(map[int]int) // source word index → matrix column

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	row := 0
	for sc.Scan() {
		row++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, rowErr(path, row, line, "fewer than 2 columns", internalerr.ErrMalformedRow)
		}

		word, err := strconv.Atoi(fields[0])
		if err != nil || word < 0 {
			return nil, rowErr(path, row, line, fmt.Sprintf("bad word index %q", fields[0]), internalerr.ErrMalformedRow)
		}
		col, ok := columns[word]
		if !ok {
			col = len(columns)
			columns[word] = col
		}

		for _, tok := range fields[2:] {
			parts := strings.SplitN(tok, ":", 2)
			if len(parts) != 2 {
				return nil, rowErr(path, row, line, fmt.Sprintf("token %q missing colon", tok), internalerr.ErrMalformedRow)
			}
			topic, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, rowErr(path, row, line, fmt.Sprintf("bad topic index in token %q", tok), internalerr.ErrMalformedRow)
			}
			if topic < 0 || topic >= opts.Topics {
				return nil, rowErr(path, row, line, fmt.Sprintf("topic %d not in [0,%d)", topic, opts.Topics), internalerr.ErrTopicIndexOutOfRange)
			}
			count, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, rowErr(path, row, line, fmt.Sprintf("bad count in token %q", tok), internalerr.ErrMalformedRow)
			}
			cells = append(cells, cell{topic: topic, col: col, count: count})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: no word rows: %w", path, internalerr.ErrMalformedRow)
	}

	wt := mat.NewDense(opts.Topics, len(columns), nil)
	for _, c := range cells {
		wt.Set(c.topic, c.col, c.count)
	}

	if err := normalizeRows(wt, opts.EmptyTopic, path); err != nil {
		return nil, err
	}
	return wt, nil
}

// normalizeRows divides each row by its sum so rows are proper
// distributions. Zero-sum rows follow the empty-topic policy instead of
// dividing by zero.
func normalizeRows(m *mat.Dense, policy EmptyTopicPolicy, path string) error {
	rows, cols := m.Dims()
	for t := 0; t < rows; t++ {
		sum := 0.0
		for w := 0; w < cols; w++ {
			sum += m.At(t, w)
		}
		if sum == 0 {
			if policy == ErrorOnEmpty {
				return fmt.Errorf("%s: topic %d: %w", path, t, internalerr.ErrEmptyTopic)
			}
			continue // zero-fill: leave the row as-is
		}
		for w := 0; w < cols; w++ {
			m.Set(t, w, m.At(t, w)/sum)
		}
	}
	return nil
}
