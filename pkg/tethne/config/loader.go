package config

import (
	"fmt"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
	"github.com/digitalhps/tethne/pkg/tethne/mallet"
)

// Loader turns a job file into validated assembler inputs.
type Loader struct {
	JobPath string
}

// Load reads the job file and returns the sources and options for one call
// to mallet.Load. The topic count is carried in the options alone so the two
// matrix parsers cannot disagree on Z.
func (l *Loader) Load() (mallet.Sources, mallet.Options, error) {
	var (
		src  mallet.Sources
		opts mallet.Options
	)

	job, err := LoadJob(l.JobPath)
	if err != nil {
		return src, opts, fmt.Errorf("load job: %w", err)
	}

	if job.Model.TopDoc == "" {
		return src, opts, fmt.Errorf("model.top_doc is required: %w", internalerr.ErrInvalidConfig)
	}
	if job.Model.WordTop == "" {
		return src, opts, fmt.Errorf("model.word_top is required: %w", internalerr.ErrInvalidConfig)
	}
	if job.Model.TopicKeys == "" {
		return src, opts, fmt.Errorf("model.topic_keys is required: %w", internalerr.ErrInvalidConfig)
	}
	if job.Model.Topics < 1 {
		return src, opts, fmt.Errorf("model.topics must be at least 1, got %d: %w", job.Model.Topics, internalerr.ErrInvalidConfig)
	}

	src = mallet.Sources{
		TopDoc:    job.Model.TopDoc,
		WordTop:   job.Model.WordTop,
		TopicKeys: job.Model.TopicKeys,
		Metadata:  job.Model.Metadata,
	}
	opts = mallet.Options{
		Topics:      job.Model.Topics,
		StrictPairs: job.Assembly.StrictPairs,
	}

	switch job.Assembly.EmptyTopic {
	case "", "zero":
		opts.EmptyTopic = mallet.ZeroFill
	case "error":
		opts.EmptyTopic = mallet.ErrorOnEmpty
	default:
		return src, opts, fmt.Errorf("assembly.empty_topic %q (want zero or error): %w", job.Assembly.EmptyTopic, internalerr.ErrInvalidConfig)
	}

	return src, opts, nil
}
