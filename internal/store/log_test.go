package store

import (
	"fmt"
	"testing"
)

func TestAppendEvictsOldestAtCap(t *testing.T) {
	log := NewLog[Text](5)

	for i := 0; i < 8; i++ {
		log.Append("visitor", Text{Text: fmt.Sprintf("t%d", i)})
	}

	if log.Len() != 5 {
		t.Fatalf("Len = %d, want 5", log.Len())
	}

	entries := log.Recent(5, "nobody")
	if len(entries) != 5 {
		t.Fatalf("Recent returned %d entries, want 5", len(entries))
	}
	// The three oldest (t0-t2) were evicted; t3-t7 remain, oldest first.
	for i, e := range entries {
		want := fmt.Sprintf("t%d", i+3)
		if e.Item.Text != want {
			t.Errorf("entries[%d] = %q, want %q", i, e.Item.Text, want)
		}
	}
}

func TestAppendStampsMetadata(t *testing.T) {
	log := NewLog[Text](10)
	log.Append("visitor-1", Text{Text: "hello"})

	e := log.Recent(1, "nobody")[0]
	if e.ID == "" {
		t.Error("entry has no id")
	}
	if e.Author != "visitor-1" {
		t.Errorf("Author = %q, want visitor-1", e.Author)
	}
	if e.At.IsZero() {
		t.Error("entry has no timestamp")
	}
}

func TestRecentExcludesAuthor(t *testing.T) {
	log := NewLog[Text](10)
	log.Append("a", Text{Text: "mine"})
	log.Append("b", Text{Text: "theirs"})
	log.Append("a", Text{Text: "also mine"})

	entries := log.Recent(10, "a")
	if len(entries) != 1 {
		t.Fatalf("Recent returned %d entries, want 1", len(entries))
	}
	if entries[0].Item.Text != "theirs" {
		t.Errorf("got %q, want %q", entries[0].Item.Text, "theirs")
	}
}

func TestRecentCapsResultSize(t *testing.T) {
	log := NewLog[Text](10)
	for i := 0; i < 10; i++ {
		log.Append("a", Text{Text: fmt.Sprintf("t%d", i)})
	}

	entries := log.Recent(3, "nobody")
	if len(entries) != 3 {
		t.Fatalf("Recent returned %d entries, want 3", len(entries))
	}
	// Most recent three, chronological.
	for i, want := range []string{"t7", "t8", "t9"} {
		if entries[i].Item.Text != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Item.Text, want)
		}
	}
}

func TestSampleExcludesAuthorAndCapsSize(t *testing.T) {
	log := NewLog[Text](20)
	for i := 0; i < 10; i++ {
		log.Append("a", Text{Text: "mine"})
		log.Append("b", Text{Text: "theirs"})
	}

	entries := log.Sample(4, "a")
	if len(entries) != 4 {
		t.Fatalf("Sample returned %d entries, want 4", len(entries))
	}
	for _, e := range entries {
		if e.Author == "a" {
			t.Error("sample contains the excluded author's entry")
		}
	}

	// Asking for more than exists returns everything else.
	all := log.Sample(100, "a")
	if len(all) != 10 {
		t.Errorf("Sample(100) returned %d entries, want 10", len(all))
	}
}

func TestEmptyLog(t *testing.T) {
	log := NewLog[Text](5)
	if log.Len() != 0 {
		t.Errorf("Len = %d, want 0", log.Len())
	}
	if got := log.Recent(5, "x"); len(got) != 0 {
		t.Errorf("Recent on empty log returned %d entries", len(got))
	}
	if got := log.Sample(5, "x"); len(got) != 0 {
		t.Errorf("Sample on empty log returned %d entries", len(got))
	}
}
