package vcard

import (
	"strings"
	"testing"
)

func TestParse_SimpleCard(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:Smith;John;;;",
		"TEL;TYPE=CELL:0176 1111111",
		"TEL;TYPE=CELL:0176 2222222",
		"END:VCARD",
	}, "\r\n")

	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(got))
	}
	c := got[0]
	if c.Surname != "Smith" || c.Name != "John" {
		t.Fatalf("name parse got %q %q", c.Surname, c.Name)
	}
	if c.Mobile1 != "0176 1111111" || c.Mobile2 != "0176 2222222" {
		t.Fatalf("mobile slots got %q %q", c.Mobile1, c.Mobile2)
	}
	if c.Office1 != "" || c.Home1 != "" {
		t.Fatalf("unexpected slots: office=%q home=%q", c.Office1, c.Home1)
	}
}

func TestParse_OrgWinsOverFNForEmptyN(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"BEGIN:VCARD",
		"N:;;;;",
		"FN:Acme Taxi Dispatch",
		"ORG:Acme Taxi",
		"TEL:030 111222",
		"END:VCARD",
	}, "\n")

	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(got))
	}
	if got[0].Surname != "Acme Taxi" || got[0].Name != "" {
		t.Fatalf("expected ORG to win, got surname=%q name=%q", got[0].Surname, got[0].Name)
	}
}

func TestParse_FNFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		fn          string
		wantSurname string
		wantGiven   string
	}{
		{"two tokens", "FN:John Smith", "Smith", "John"},
		{"three tokens", "FN:John van Smith", "van Smith", "John"},
		{"single token", "FN:Cher", "Cher", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := "BEGIN:VCARD\n" + tc.fn + "\nTEL:123\nEND:VCARD"
			got, err := Parse([]byte(raw))
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 contact, got %d", len(got))
			}
			if got[0].Surname != tc.wantSurname || got[0].Name != tc.wantGiven {
				t.Fatalf("got surname=%q name=%q want %q %q",
					got[0].Surname, got[0].Name, tc.wantSurname, tc.wantGiven)
			}
		})
	}
}

func TestParse_TelTypeBuckets(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"BEGIN:VCARD",
		"N:Buckets;Billy;;;",
		"TEL;TYPE=WORK:100",
		"TEL;TYPE=MAIN:101",
		"TEL;TYPE=OFFICE:102",
		"TEL;TYPE=IPHONE:200",
		"TEL;TYPE=HOME:300",
		"TEL;TYPE=OTHER:301",
		"TEL;TYPE=VOICE:302",
		"TEL:303",
		"END:VCARD",
	}, "\n")

	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	c := got[0]
	if c.Office1 != "100" || c.Office2 != "101" {
		t.Fatalf("office got %q %q (third work number must be dropped)", c.Office1, c.Office2)
	}
	if c.Mobile1 != "200" || c.Mobile2 != "" {
		t.Fatalf("mobile got %q %q", c.Mobile1, c.Mobile2)
	}
	// VOICE and untyped numbers fall back to the home bucket, extras dropped
	if c.Home1 != "300" || c.Home2 != "301" {
		t.Fatalf("home got %q %q", c.Home1, c.Home2)
	}
}

func TestParse_LineFoldingAndEscapes(t *testing.T) {
	t.Parallel()

	raw := "BEGIN:VCARD\r\nN:Sm\r\n ith;Jo\r\n\thn;;;\r\nORG:Acme\\, Inc;Sales\r\nEND:VCARD"
	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(got))
	}
	if got[0].Surname != "Smith" || got[0].Name != "John" {
		t.Fatalf("unfold got surname=%q name=%q", got[0].Surname, got[0].Name)
	}
}

func TestParse_EscapeDecoding(t *testing.T) {
	t.Parallel()

	raw := "BEGIN:VCARD\nN:A\\;B;C\\,D;;;\nTEL:123\nEND:VCARD"
	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got[0].Surname != "A;B" || got[0].Name != "C,D" {
		t.Fatalf("escape decode got surname=%q name=%q", got[0].Surname, got[0].Name)
	}
}

func TestParse_DiscardsEmptyCandidates(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"BEGIN:VCARD",
		"N:;;;;",
		"END:VCARD",
		"BEGIN:VCARD",
		"N:Kept;;;;",
		"END:VCARD",
	}, "\n")

	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 1 || got[0].Surname != "Kept" {
		t.Fatalf("expected only the named contact, got %+v", got)
	}
}

func TestParse_IgnoresPreambleAndNonBlocks(t *testing.T) {
	t.Parallel()

	raw := "junk before the first card\nbegin:vcard\nN:Lower;Case;;;\nEND:VCARD"
	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 1 || got[0].Surname != "Lower" {
		t.Fatalf("expected case-insensitive marker handling, got %+v", got)
	}
}

func TestParse_ZeroBlocksYieldEmpty(t *testing.T) {
	t.Parallel()

	got, err := Parse([]byte("not a vcard at all"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no contacts, got %d", len(got))
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte{0x42, 0xff, 0xfe, 0x42}); err == nil {
		t.Fatal("expected error for invalid UTF-8 input")
	}
}
