// Package mallet assembles the flat-file output of an LDA run with MALLET
// into a single in-memory model. It reconciles three independently-indexed
// sparse sources (topic-document weights, word-topic counts, topic keys) and
// an optional metadata map into dense, consistently-indexed structures.
package mallet

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
	"github.com/digitalhps/tethne/pkg/tethne/model"
)

// Sources names the input files of one MALLET run. Metadata is optional;
// leave it empty to skip the metadata stage.
type Sources struct {
	TopDoc    string // --output-doc-topics file, tab-delimited, one header row
	WordTop   string // --word-topic-counts-file file, space-delimited
	TopicKeys string // --output-topic-keys file, tab-delimited
	Metadata  string // optional tab-delimited (docIndex, externalKey, ...) file
}

// EmptyTopicPolicy decides what happens when a topic row of the word-topic
// matrix has a zero sum and cannot be normalized.
type EmptyTopicPolicy int

const (
	// ZeroFill leaves a zero-sum topic row all-zero instead of dividing by
	// zero. This is the default.
	ZeroFill EmptyTopicPolicy = iota
	// ErrorOnEmpty fails assembly with internalerr.ErrEmptyTopic naming the
	// offending topic.
	ErrorOnEmpty
)

// Options configures one assembly. Topics is the topic count Z the run was
// produced with; it bounds every topic index in both matrix sources.
type Options struct {
	Topics     int
	EmptyTopic EmptyTopicPolicy
	// StrictPairs requires an even number of pair columns in each
	// topic-document row. By default the trailing unpaired column that
	// MALLET emits is dropped.
	StrictPairs bool
}

// Load parses the sources and returns the assembled model.
//
// The four stages are independent and run concurrently; the first failure
// cancels the rest and is returned unchanged. Load never returns a partial
// model: the result is either fully populated or nil with an error naming
// the offending source and row.
func Load(ctx context.Context, src Sources, opts Options) (*model.Model, error) {
	if opts.Topics < 1 {
		return nil, fmt.Errorf("topic count %d: %w", opts.Topics, internalerr.ErrInvalidConfig)
	}

	var (
		td *mat.Dense
		wt *mat.Dense
		tk map[int]model.TopicKey
		md map[int]string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		td, err = parseTopDoc(src.TopDoc, opts)
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		wt, err = parseWordTop(src.WordTop, opts)
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		tk, err = parseTopicKeys(src.TopicKeys)
		return err
	})
	if src.Metadata != "" {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			md, err = parseMetadata(src.Metadata)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return model.New(td, wt, tk, md), nil
}
