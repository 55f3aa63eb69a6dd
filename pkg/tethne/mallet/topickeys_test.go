package mallet

import (
	"errors"
	"testing"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
)

func TestTopicKeysParsing(t *testing.T) {
	path := writeSource(t, "topic_keys",
		"0\t0.5\talpha beta gamma\n"+
			"1\t0.25\tdelta\n")

	tk, err := parseTopicKeys(path)
	if err != nil {
		t.Fatalf("parseTopicKeys: %v", err)
	}
	if len(tk) != 2 {
		t.Fatalf("len = %d, want 2", len(tk))
	}

	key := tk[0]
	if key.Weight != 0.5 {
		t.Errorf("topic 0 weight = %f, want 0.5", key.Weight)
	}
	if len(key.Keywords) != 3 || key.Keywords[2] != "gamma" {
		t.Errorf("topic 0 keywords = %v, want [alpha beta gamma]", key.Keywords)
	}
}

func TestTopicKeysLastWriteWins(t *testing.T) {
	path := writeSource(t, "topic_keys",
		"2\t0.1\tearly words\n"+
			"0\t0.3\tother\n"+
			"2\t0.9\tlate words\n")

	tk, err := parseTopicKeys(path)
	if err != nil {
		t.Fatalf("parseTopicKeys: %v", err)
	}
	key := tk[2]
	if key.Weight != 0.9 {
		t.Errorf("topic 2 weight = %f, want the later row's 0.9", key.Weight)
	}
	if len(key.Keywords) != 2 || key.Keywords[0] != "late" {
		t.Errorf("topic 2 keywords = %v, want the later row's [late words]", key.Keywords)
	}
}

func TestTopicKeysIndicesVerbatim(t *testing.T) {
	// Topic indices come straight from the file, even when sparse.
	path := writeSource(t, "topic_keys", "17\t0.5\tsolo\n")

	tk, err := parseTopicKeys(path)
	if err != nil {
		t.Fatalf("parseTopicKeys: %v", err)
	}
	if _, ok := tk[17]; !ok {
		t.Error("topic 17 should be present under its verbatim index")
	}
}

func TestTopicKeysMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"fewer than 3 columns", "0\t0.5\n"},
		{"bad topic index", "x\t0.5\talpha\n"},
		{"bad weight", "0\tx\talpha\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSource(t, "topic_keys", tc.content)
			_, err := parseTopicKeys(path)
			if !errors.Is(err, internalerr.ErrMalformedRow) {
				t.Errorf("err = %v, want ErrMalformedRow", err)
			}
		})
	}
}
