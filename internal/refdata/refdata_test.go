package refdata

import "testing"

func TestLawCatalog(t *testing.T) {
	all := Laws()
	if len(all) != 4 {
		t.Fatalf("expected 4 laws, got %d", len(all))
	}
	for _, l := range all {
		got, ok := LawByID(l.ID)
		if !ok {
			t.Fatalf("LawByID(%q) missing", l.ID)
		}
		if got.Title != l.Title || got.Link == "" {
			t.Fatalf("law %q not consistent with catalog", l.ID)
		}
	}
	if _, ok := LawByID("law_unknown"); ok {
		t.Fatal("unknown law id must not resolve")
	}
}

func TestLawsReturnsCopy(t *testing.T) {
	first := Laws()
	first[0].Title = "mutated"
	if second := Laws(); second[0].Title == "mutated" {
		t.Fatal("Laws must return a copy of the catalog")
	}
}

func TestTopicCatalog(t *testing.T) {
	all := Topics()
	if len(all) != 6 {
		t.Fatalf("expected 6 topics, got %d", len(all))
	}
	for _, want := range []string{"wildfire", "typhoon", "flood", "earthquake", "heatwave", "smog"} {
		if _, ok := TopicByID(want); !ok {
			t.Fatalf("TopicByID(%q) missing", want)
		}
	}
	if _, ok := TopicByID("volcano"); ok {
		t.Fatal("unknown topic id must not resolve")
	}
}
