package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Job describes one assembly run: where the MALLET output files live and how
// the assembler should treat the format's edge cases.
type Job struct {
	Model    Model    `yaml:"model"`
	Assembly Assembly `yaml:"assembly"`
}

// Model names the input files and the topic count of the run.
type Model struct {
	TopDoc    string `yaml:"top_doc"`
	WordTop   string `yaml:"word_top"`
	TopicKeys string `yaml:"topic_keys"`
	Metadata  string `yaml:"metadata"` // optional
	Topics    int    `yaml:"topics"`
}

// Assembly holds the named policy choices of the parsers.
type Assembly struct {
	// EmptyTopic is "zero" (default) or "error".
	EmptyTopic string `yaml:"empty_topic"`
	// StrictPairs requires even-length pair data in topic-document rows.
	StrictPairs bool `yaml:"strict_pairs"`
}

// LoadJob loads a job description from a YAML file.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job %s: %w", path, err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse job %s: %w", path, err)
	}

	return &job, nil
}
