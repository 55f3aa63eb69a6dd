package mallet

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
)

// parseMetadata reads the tab-delimited metadata source into a document
// index → external key map. The first row is a header and is discarded; only
// the first two columns of each data row are consumed. A duplicate document
// index overwrites the earlier entry (last write wins).
func parseMetadata(path string) (map[int]string, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	md := make(map[int]string)

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
		md[doc] = cols[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return md, nil
}
