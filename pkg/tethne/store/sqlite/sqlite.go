package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gonum.org/v1/gonum/mat"
	_ "modernc.org/sqlite"

	"github.com/digitalhps/tethne/pkg/tethne/model"
	"github.com/digitalhps/tethne/pkg/tethne/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if it does not exist.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	topics INTEGER NOT NULL,
	documents INTEGER NOT NULL,
	words INTEGER NOT NULL,
	has_metadata INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS doc_topics (
	run_id TEXT NOT NULL,
	doc INTEGER NOT NULL,
	topic INTEGER NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY(run_id, doc, topic),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS topic_words (
	run_id TEXT NOT NULL,
	topic INTEGER NOT NULL,
	word INTEGER NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY(run_id, topic, word),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS topic_keys (
	run_id TEXT NOT NULL,
	topic INTEGER NOT NULL,
	weight REAL NOT NULL,
	keywords TEXT NOT NULL,
	PRIMARY KEY(run_id, topic),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS doc_metadata (
	run_id TEXT NOT NULL,
	doc INTEGER NOT NULL,
	key TEXT NOT NULL,
	PRIMARY KEY(run_id, doc),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveModel persists a model under a fresh ULID run id. Only nonzero matrix
// entries are stored; dimensions live in the runs row so the dense shapes
// survive the round trip.
func (s *sqliteStore) SaveModel(ctx context.Context, m *model.Model) (string, error) {
	runID := ulid.MustNew(ulid.Now(), s.entropy).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	hasMetadata := 0
	if m.HasMetadata() {
		hasMetadata = 1
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, topics, documents, words, has_metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, m.Topics(), m.Documents(), m.Words(), hasMetadata, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}

	if err := insertMatrix(ctx, tx, `INSERT INTO doc_topics (run_id, doc, topic, weight) VALUES (?, ?, ?, ?)`, runID, m.DocTopic()); err != nil {
		return "", err
	}
	if err := insertMatrix(ctx, tx, `INSERT INTO topic_words (run_id, topic, word, weight) VALUES (?, ?, ?, ?)`, runID, m.TopicWord()); err != nil {
		return "", err
	}

	keyStmt, err := tx.PrepareContext(ctx, `INSERT INTO topic_keys (run_id, topic, weight, keywords) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer keyStmt.Close()
	for topic, key := range m.TopicKeys() {
		if _, err := keyStmt.ExecContext(ctx, runID, topic, key.Weight, strings.Join(key.Keywords, " ")); err != nil {
			return "", err
		}
	}

	if m.HasMetadata() {
		mdStmt, err := tx.PrepareContext(ctx, `INSERT INTO doc_metadata (run_id, doc, key) VALUES (?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer mdStmt.Close()
		for doc, key := range m.Metadata() {
			if _, err := mdStmt.ExecContext(ctx, runID, doc, key); err != nil {
				return "", err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

func insertMatrix(ctx context.Context, tx *sql.Tx, query, runID string, m *mat.Dense) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			w := m.At(i, j)
			if w == 0 {
				continue
			}
			if _, err := stmt.ExecContext(ctx, runID, i, j, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetModel reloads a persisted model by run id.
func (s *sqliteStore) GetModel(ctx context.Context, runID string) (*model.Model, bool, error) {
	var (
		topics, documents, words int
		hasMetadata              int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT topics, documents, words, has_metadata FROM runs WHERE id = ?`, runID,
	).Scan(&topics, &documents, &words, &hasMetadata)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	docTopic := mat.NewDense(documents, topics, nil)
	if err := scanMatrix(ctx, s.db, `SELECT doc, topic, weight FROM doc_topics WHERE run_id = ?`, runID, docTopic); err != nil {
		return nil, false, err
	}
	topicWord := mat.NewDense(topics, words, nil)
	if err := scanMatrix(ctx, s.db, `SELECT topic, word, weight FROM topic_words WHERE run_id = ?`, runID, topicWord); err != nil {
		return nil, false, err
	}

	keys := make(map[int]model.TopicKey)
	rows, err := s.db.QueryContext(ctx, `SELECT topic, weight, keywords FROM topic_keys WHERE run_id = ?`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			topic    int
			weight   float64
			keywords string
		)
		if err := rows.Scan(&topic, &weight, &keywords); err != nil {
			return nil, false, err
		}
		keys[topic] = model.TopicKey{Weight: weight, Keywords: strings.Fields(keywords)}
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	var metadata map[int]string
	if hasMetadata == 1 {
		metadata = make(map[int]string)
		mdRows, err := s.db.QueryContext(ctx, `SELECT doc, key FROM doc_metadata WHERE run_id = ?`, runID)
		if err != nil {
			return nil, false, err
		}
		defer mdRows.Close()
		for mdRows.Next() {
			var (
				doc int
				key string
			)
			if err := mdRows.Scan(&doc, &key); err != nil {
				return nil, false, err
			}
			metadata[doc] = key
		}
		if err := mdRows.Err(); err != nil {
			return nil, false, err
		}
	}

	return model.New(docTopic, topicWord, keys, metadata), true, nil
}

func scanMatrix(ctx context.Context, db *sql.DB, query, runID string, m *mat.Dense) error {
	rows, err := db.QueryContext(ctx, query, runID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			i, j   int
			weight float64
		)
		if err := rows.Scan(&i, &j, &weight); err != nil {
			return err
		}
		m.Set(i, j, weight)
	}
	return rows.Err()
}

// ListRuns returns stored runs, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context) ([]store.RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topics, documents, words, created_at FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.RunInfo
	for rows.Next() {
		var (
			info    store.RunInfo
			created string
		)
		if err := rows.Scan(&info.ID, &info.Topics, &info.Documents, &info.Words, &created); err != nil {
			return nil, err
		}
		info.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("run %s: parse created_at: %w", info.ID, err)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run; the schema cascades to its rows.
func (s *sqliteStore) DeleteRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	return err
}
