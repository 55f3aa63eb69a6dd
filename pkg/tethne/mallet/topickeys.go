package mallet

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
	"github.com/digitalhps/tethne/pkg/tethne/model"
)

// parseTopicKeys reads the tab-delimited topic-keys source, one row per
// topic: topicIndex, weight, space-joined keywords. There is no header row.
// Topic indices are taken verbatim from the file; a duplicate index
// overwrites the earlier entry (last write wins).
func parseTopicKeys(path string) (map[int]model.TopicKey, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tk := make(map[int]model.TopicKey)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	row := 0
	for sc.Scan() {
		row++
		line := sc.Text()
		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, rowErr(path, row, line, "fewer than 3 columns", internalerr.ErrMalformedRow)
		}
		topic, err := strconv.Atoi(cols[0])
		if err != nil {
			return nil, rowErr(path, row, line, fmt.Sprintf("bad topic index %q", cols[0]), internalerr.ErrMalformedRow)
		}
		weight, err := strconv.ParseFloat(cols[1], 64)
		if err != nil {
			return nil, rowErr(path, row, line, fmt.Sprintf("bad weight %q", cols[1]), internalerr.ErrMalformedRow)
		}
		tk[topic] = model.TopicKey{Weight: weight, Keywords: strings.Fields(cols[2])}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tk, nil
}
