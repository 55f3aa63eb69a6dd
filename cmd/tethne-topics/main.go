package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/digitalhps/tethne/pkg/tethne/store/sqlite"
)

func main() {
	var (
		dbPath = flag.String("db", "", "SQLite database holding persisted models (required)")
		runID  = flag.String("run", "", "Run id to inspect; omit to list stored runs")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if *runID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			log.Fatalf("list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("no stored runs")
			return
		}
		for _, run := range runs {
			fmt.Printf("%s  %s  %d topics, %d documents, %d words\n",
				run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.Topics, run.Documents, run.Words)
		}
		return
	}

	m, found, err := st.GetModel(ctx, *runID)
	if err != nil {
		log.Fatalf("get model: %v", err)
	}
	if !found {
		log.Fatalf("run %s not found", *runID)
	}

	fmt.Printf("run %s: %d documents, %d topics, %d words\n",
		*runID, m.Documents(), m.Topics(), m.Words())

	indices := make([]int, 0, len(m.TopicKeys()))
	for topic := range m.TopicKeys() {
		indices = append(indices, topic)
	}
	sort.Ints(indices)
	for _, topic := range indices {
		key, _ := m.Key(topic)
		fmt.Printf("topic %3d  %.4f  %s\n", topic, key.Weight, strings.Join(key.Keywords, " "))
	}
}
