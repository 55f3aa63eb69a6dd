package model

import "gonum.org/v1/gonum/mat"

// TopicKey is the human-readable summary of one topic: its Dirichlet weight
// and the top keywords reported by the modeling tool.
type TopicKey struct {
	Weight   float64
	Keywords []string
}

// Model is the assembled output of an LDA run: the dense document-topic and
// topic-word matrices, the per-topic keyword summaries, and an optional map
// from document index to an external identifier (e.g. a DOI).
//
// A Model is immutable after construction. Accessors return the internal
// structures directly; callers must treat them as read-only. Concurrent
// readers need no synchronization.
type Model struct {
	docTopic  *mat.Dense
	topicWord *mat.Dense
	topicKeys map[int]TopicKey
	metadata  map[int]string
}

// New builds a Model from the four assembled structures. metadata may be nil
// when no metadata source was supplied.
func New(docTopic, topicWord *mat.Dense, topicKeys map[int]TopicKey, metadata map[int]string) *Model {
	return &Model{
		docTopic:  docTopic,
		topicWord: topicWord,
		topicKeys: topicKeys,
		metadata:  metadata,
	}
}

// DocTopic returns the document×topic matrix. Entry (d, t) is the modeled
// proportion of document d attributable to topic t. Rows for documents with
// no listed topics are all-zero.
func (m *Model) DocTopic() *mat.Dense { return m.docTopic }

// TopicWord returns the topic×word matrix. Rows are normalized to sum to 1,
// except rows left all-zero under the zero-fill empty-topic policy.
func (m *Model) TopicWord() *mat.Dense { return m.topicWord }

// TopicKeys returns the topic index → summary map.
func (m *Model) TopicKeys() map[int]TopicKey { return m.topicKeys }

// Key returns the summary for one topic.
func (m *Model) Key(topic int) (TopicKey, bool) {
	k, ok := m.topicKeys[topic]
	return k, ok
}

// Metadata returns the document index → external key map, or nil when no
// metadata source was supplied.
func (m *Model) Metadata() map[int]string { return m.metadata }

// HasMetadata reports whether a metadata source was supplied at assembly.
func (m *Model) HasMetadata() bool { return m.metadata != nil }

// MetadataKey returns the external key for a document index.
func (m *Model) MetadataKey(doc int) (string, bool) {
	key, ok := m.metadata[doc]
	return key, ok
}

// Documents returns the number of document rows.
func (m *Model) Documents() int {
	r, _ := m.docTopic.Dims()
	return r
}

// Topics returns the number of topics Z.
func (m *Model) Topics() int {
	_, c := m.docTopic.Dims()
	return c
}

// Words returns the number of word columns.
func (m *Model) Words() int {
	_, c := m.topicWord.Dims()
	return c
}
