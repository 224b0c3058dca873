package corpus_test

import (
	"testing"

	"petrarch/internal/corpus"
)

func TestDateOrdinal(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"19700101", 719163, false},
		{"20140101", 735234, false},
		{"20140101 extra", 735234, false},
		{"2014", 0, true},
		{"2014AB01", 0, true},
	}
	for _, tt := range tests {
		got, err := corpus.DateOrdinal(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("DateOrdinal(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("DateOrdinal(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("DateOrdinal(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatParsed(t *testing.T) {
	in := "(ROOT\n  (S (NP (NNP France))\n    (VP (VBD protested))))\n"
	got := corpus.FormatParsed(in)
	want := "(S (NP (NNP FRANCE )  )  (VP (VBD PROTESTED )  )  )  "
	if got != want {
		t.Fatalf("FormatParsed mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestCleanText(t *testing.T) {
	got := corpus.CleanText("\n    France protested\n    the move.  ")
	if got != "France protested the move." {
		t.Fatalf("unexpected cleaned text %q", got)
	}
}

func TestSplitRecordID(t *testing.T) {
	story, sent, err := corpus.SplitRecordID("AFP-2014-03")
	if err != nil {
		t.Fatalf("SplitRecordID returned error: %v", err)
	}
	if story != "AFP-2014" || sent != "03" {
		t.Fatalf("unexpected split %q / %q", story, sent)
	}
	for _, bad := range []string{"AFP", "-1", "AFP-", ""} {
		if _, _, err := corpus.SplitRecordID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
