package pipeline

import "testing"

func TestDedupeSeen(t *testing.T) {
	d := NewDedupe()

	if d.Seen("dir", "/admin/") {
		t.Error("first sighting should return false")
	}
	if !d.Seen("dir", "/admin/") {
		t.Error("second sighting should return true")
	}
}

func TestDedupeKeyspacesAreIndependent(t *testing.T) {
	d := NewDedupe()

	if d.Seen("dir", "/admin/") {
		t.Error("first sighting in dir should return false")
	}
	if d.Seen("file", "/admin/") {
		t.Error("same key in another keyspace should be unseen")
	}
}

func TestDedupeEmptyKeyIsValid(t *testing.T) {
	d := NewDedupe()

	if d.Seen("domain", "") {
		t.Error("first empty key should return false")
	}
	if !d.Seen("domain", "") {
		t.Error("second empty key should return true")
	}
}

func TestDedupeGuards(t *testing.T) {
	var nilDedupe *Dedupe
	if nilDedupe.Seen("dir", "x") {
		t.Error("nil deduplicator should report unseen")
	}

	d := NewDedupe()
	if d.Seen("", "x") {
		t.Error("empty keyspace should report unseen")
	}
}
