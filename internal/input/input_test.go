package input

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  Cebu City  ", "Cebu City"},
		{"collapses runs", "Cebu \t\n City", "Cebu City"},
		{"strips disallowed", "Cebu @#$ City!", "Cebu City!"},
		{"keeps allowed punctuation", "Makati, N.C.R. - PH?", "Makati, N.C.R. - PH?"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{"  Cebu   City ", "Quezon @@ City!", "a\tb\nc", "", "???"}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestValidateCity(t *testing.T) {
	if !ValidateCity("Cebu City", 0) {
		t.Fatal("expected Cebu City to be valid")
	}
	if ValidateCity(strings.Repeat("a", 60), 0) {
		t.Fatal("expected 60-char city to be rejected")
	}
	if ValidateCity("", 0) {
		t.Fatal("expected empty city to be rejected")
	}
	if ValidateCity("Cebu@City", 0) {
		t.Fatal("expected city with @ to be rejected")
	}
	if !ValidateCity("Davao-del-Sur, PH", 0) {
		t.Fatal("expected hyphenated city to be valid")
	}
}

func TestValidateQuestion(t *testing.T) {
	if !ValidateQuestion("Why is the sea level rising?", 0) {
		t.Fatal("expected question to be valid")
	}
	if ValidateQuestion("   ", 0) {
		t.Fatal("expected blank question to be rejected")
	}
	if ValidateQuestion(strings.Repeat("x", 201), 0) {
		t.Fatal("expected over-long question to be rejected")
	}
	if !ValidateQuestion(strings.Repeat("x", 200), 0) {
		t.Fatal("expected 200-char question to be valid")
	}
}
