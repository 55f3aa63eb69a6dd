package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/digitalhps/tethne/pkg/tethne/config"
	"github.com/digitalhps/tethne/pkg/tethne/mallet"
	"github.com/digitalhps/tethne/pkg/tethne/store/sqlite"
)

func main() {
	var (
		jobPath     = flag.String("config", "", "YAML job file (alternative to the explicit path flags)")
		topDoc      = flag.String("top-doc", "", "Path to the --output-doc-topics file")
		wordTop     = flag.String("word-top", "", "Path to the --word-topic-counts-file file")
		topicKeys   = flag.String("topic-keys", "", "Path to the --output-topic-keys file")
		metadata    = flag.String("metadata", "", "Optional path to the metadata file")
		topics      = flag.Int("topics", 0, "Topic count Z of the run")
		strictPairs = flag.Bool("strict-pairs", false, "Require even-length pair data in doc-topics rows")
		emptyTopic  = flag.String("empty-topic", "zero", "Zero-sum topic row policy: zero or error")
		dbPath      = flag.String("db", "", "Optional SQLite database to persist the model into")
	)
	flag.Parse()

	var (
		src  mallet.Sources
		opts mallet.Options
		err  error
	)
	if *jobPath != "" {
		loader := config.Loader{JobPath: *jobPath}
		src, opts, err = loader.Load()
		if err != nil {
			log.Fatalf("load job: %v", err)
		}
	} else {
		if *topDoc == "" || *wordTop == "" || *topicKeys == "" {
			log.Fatal("--top-doc, --word-top and --topic-keys required (or --config)")
		}
		if *topics < 1 {
			log.Fatal("--topics required")
		}
		src = mallet.Sources{
			TopDoc:    *topDoc,
			WordTop:   *wordTop,
			TopicKeys: *topicKeys,
			Metadata:  *metadata,
		}
		opts = mallet.Options{Topics: *topics, StrictPairs: *strictPairs}
		switch *emptyTopic {
		case "zero":
			opts.EmptyTopic = mallet.ZeroFill
		case "error":
			opts.EmptyTopic = mallet.ErrorOnEmpty
		default:
			log.Fatalf("--empty-topic %q (want zero or error)", *emptyTopic)
		}
	}

	ctx := context.Background()

	m, err := mallet.Load(ctx, src, opts)
	if err != nil {
		log.Fatalf("assemble model: %v", err)
	}

	fmt.Printf("assembled model: %d documents, %d topics, %d words\n",
		m.Documents(), m.Topics(), m.Words())
	if m.HasMetadata() {
		fmt.Printf("metadata keys: %d documents\n", len(m.Metadata()))
	}

	indices := make([]int, 0, len(m.TopicKeys()))
	for topic := range m.TopicKeys() {
		indices = append(indices, topic)
	}
	sort.Ints(indices)
	for _, topic := range indices {
		key, _ := m.Key(topic)
		fmt.Printf("topic %3d  %.4f  %s\n", topic, key.Weight, strings.Join(key.Keywords, " "))
	}

	if *dbPath != "" {
		st, err := sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()

		runID, err := st.SaveModel(ctx, m)
		if err != nil {
			log.Fatalf("save model: %v", err)
		}
		fmt.Printf("saved as run %s\n", runID)
	}
}
