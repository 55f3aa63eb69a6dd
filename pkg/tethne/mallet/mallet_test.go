package mallet

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const (
	topDocFixture = "#doc name topic proportion\n" +
		"0\tdoc0\t0\t0.7\t1\t0.3\t0\n" +
		"1\tdoc1\n" +
		"2\tdoc2\t1\t1.0\t0\n"

	wordTopFixture = "0 apple 0:3 1:1\n" +
		"1 banana 0:1\n" +
		"2 cherry 1:3\n"

	topicKeysFixture = "0\t0.5\talpha beta\n" +
		"1\t0.25\tgamma delta\n"

	metadataFixture = "id\tdoi\n" +
		"0\t10.1000/a\n" +
		"1\t10.1000/b\n" +
		"2\t10.1000/c\n"
)

func fixtureSources(t *testing.T, withMetadata bool) Sources {
	t.Helper()
	src := Sources{
		TopDoc:    writeSource(t, "doc_top", topDocFixture),
		WordTop:   writeSource(t, "word_top", wordTopFixture),
		TopicKeys: writeSource(t, "topic_keys", topicKeysFixture),
	}
	if withMetadata {
		src.Metadata = writeSource(t, "metadata", metadataFixture)
	}
	return src
}

func TestLoadAssemblesModel(t *testing.T) {
	m, err := Load(context.Background(), fixtureSources(t, true), Options{Topics: 2})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Documents() != 3 || m.Topics() != 2 || m.Words() != 3 {
		t.Errorf("dims = (%d docs, %d topics, %d words), want (3, 2, 3)",
			m.Documents(), m.Topics(), m.Words())
	}

	td := m.DocTopic()
	if got := td.At(0, 0); got != 0.7 {
		t.Errorf("docTopic[0,0] = %f, want 0.7", got)
	}
	if got := td.At(2, 1); got != 1.0 {
		t.Errorf("docTopic[2,1] = %f, want 1.0", got)
	}

	wt := m.TopicWord()
	for topic := 0; topic < 2; topic++ {
		sum := 0.0
		for w := 0; w < 3; w++ {
			sum += wt.At(topic, w)
		}
		if math.Abs(sum-1.0) > 1e-12 {
			t.Errorf("topicWord row %d sums to %f, want 1.0", topic, sum)
		}
	}

	key, ok := m.Key(1)
	if !ok {
		t.Fatal("topic 1 missing from topic keys")
	}
	if key.Weight != 0.25 || len(key.Keywords) != 2 || key.Keywords[0] != "gamma" {
		t.Errorf("topic 1 key = %+v, want weight 0.25, keywords [gamma delta]", key)
	}

	if !m.HasMetadata() {
		t.Fatal("metadata should be present")
	}
	if doi, ok := m.MetadataKey(2); !ok || doi != "10.1000/c" {
		t.Errorf("metadata[2] = %q, %v, want 10.1000/c, true", doi, ok)
	}
}

func TestLoadWithoutMetadata(t *testing.T) {
	m, err := Load(context.Background(), fixtureSources(t, false), Options{Topics: 2})
	if err != nil {
		t.Fatalf("Load without metadata should succeed: %v", err)
	}
	if m.HasMetadata() {
		t.Error("metadata should be absent when no path is supplied")
	}
	if m.Metadata() != nil {
		t.Error("Metadata() should be nil when no path is supplied")
	}
}

func TestLoadMissingSource(t *testing.T) {
	src := fixtureSources(t, false)
	src.WordTop = filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Load(context.Background(), src, Options{Topics: 2})
	if !errors.Is(err, internalerr.ErrSourceNotFound) {
		t.Errorf("missing source: err = %v, want ErrSourceNotFound", err)
	}
}

func TestLoadInvalidTopicCount(t *testing.T) {
	_, err := Load(context.Background(), fixtureSources(t, false), Options{Topics: 0})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Topics=0: err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadAllOrNothing(t *testing.T) {
	src := fixtureSources(t, false)
	src.TopicKeys = writeSource(t, "bad_keys", "0\tnot-a-number\talpha\n")

	m, err := Load(context.Background(), src, Options{Topics: 2})
	if err == nil {
		t.Fatal("bad topic-keys source should fail the whole assembly")
	}
	if m != nil {
		t.Error("no partial model may be returned on failure")
	}
	if !errors.Is(err, internalerr.ErrMalformedRow) {
		t.Errorf("err = %v, want ErrMalformedRow", err)
	}
}

func TestLoadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, fixtureSources(t, false), Options{Topics: 2})
	if err == nil {
		t.Error("Load with a cancelled context should fail")
	}
}

func TestParseMetadataLastWriteWins(t *testing.T) {
	path := writeSource(t, "metadata",
		"id\tdoi\n0\tfirst\n1\tother\n0\tsecond\n")

	md, err := parseMetadata(path)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if md[0] != "second" {
		t.Errorf("metadata[0] = %q, want the later row's key", md[0])
	}
}

func TestParseMetadataExtraColumnsIgnored(t *testing.T) {
	path := writeSource(t, "metadata",
		"id\tdoi\textra\n0\t10.1000/x\tjunk\tmore\n")

	md, err := parseMetadata(path)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if md[0] != "10.1000/x" {
		t.Errorf("metadata[0] = %q, want 10.1000/x", md[0])
	}
}

func TestParseMetadataMalformed(t *testing.T) {
	path := writeSource(t, "metadata", "id\tdoi\nonly-one-column\n")

	_, err := parseMetadata(path)
	if !errors.Is(err, internalerr.ErrMalformedRow) {
		t.Errorf("err = %v, want ErrMalformedRow", err)
	}
}
