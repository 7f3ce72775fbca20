package authorship

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "surrounding whitespace", input: "  Jane Doe \t", want: "Jane Doe"},
		{name: "leading commas", input: ", Department of Physics", want: "Department of Physics"},
		{name: "commas after whitespace", input: " ,, ,Harvard", want: "Harvard"},
		{name: "literal escape sequences", input: `\n\n  Boston \n`, want: "Boston"},
		{name: "real newlines", input: "\n\nBoston\n", want: "Boston"},
		{name: "trailing comma kept", input: "Boston, MA,", want: "Boston, MA,"},
		{name: "interior untouched", input: "a ,b \\n c\nd", want: "a ,b \\n c\nd"},
		{name: "empty", input: "", want: ""},
		{name: "only noise", input: ` , \n `, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		`\n,\n , x`,
		", \\n\\n Department of Chemistry, Stanford University \\n",
		" Zürich ",
		"\xff\xfe broken utf8 ",
		`trailing \n\n`,
	}

	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}
