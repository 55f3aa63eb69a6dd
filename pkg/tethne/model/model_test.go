package model

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestModelAccessors(t *testing.T) {
	td := mat.NewDense(3, 2, nil)
	wt := mat.NewDense(2, 5, nil)
	keys := map[int]TopicKey{0: {Weight: 0.5, Keywords: []string{"alpha"}}}
	md := map[int]string{1: "10.1000/b"}

	m := New(td, wt, keys, md)

	if m.Documents() != 3 || m.Topics() != 2 || m.Words() != 5 {
		t.Errorf("dims = (%d, %d, %d), want (3, 2, 5)", m.Documents(), m.Topics(), m.Words())
	}
	if key, ok := m.Key(0); !ok || key.Keywords[0] != "alpha" {
		t.Errorf("Key(0) = %+v, %v", key, ok)
	}
	if _, ok := m.Key(7); ok {
		t.Error("Key(7) should be absent")
	}
	if doi, ok := m.MetadataKey(1); !ok || doi != "10.1000/b" {
		t.Errorf("MetadataKey(1) = %q, %v", doi, ok)
	}
}

func TestModelMetadataPresence(t *testing.T) {
	td := mat.NewDense(1, 1, nil)
	wt := mat.NewDense(1, 1, nil)

	without := New(td, wt, map[int]TopicKey{}, nil)
	if without.HasMetadata() {
		t.Error("nil metadata should report absent")
	}
	if _, ok := without.MetadataKey(0); ok {
		t.Error("MetadataKey on an absent map should report false")
	}

	with := New(td, wt, map[int]TopicKey{}, map[int]string{})
	if !with.HasMetadata() {
		t.Error("an empty-but-present map should report present")
	}
}
