package scan

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/lexion"
	"github.com/npillmayer/lexion/automata"
	"github.com/npillmayer/lexion/grammar"
)

const tinyGrammar = `
# patterns
kwif  : if
ident : [a-zA-Z_] [a-zA-Z0-9_]*
num   : [0-9]+
ws    : [\s\t\n]+
`

func makeTokenizer(t *testing.T, src, input string) *Tokenizer {
	t.Helper()
	g, err := grammar.Parse(t.Name(), src)
	if err != nil {
		t.Fatal(err)
	}
	a, err := automata.Compile(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	return New(a, []byte(input))
}

// expectTokens scans the complete input and compares "kind:lexeme" pairs.
func expectTokens(t *testing.T, tk *Tokenizer, want []string) {
	t.Helper()
	tokens := tk.Tokens()
	if len(tokens) != len(want) {
		t.Fatalf("expected %d token(s), got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tok := range tokens {
		got := tk.KindName(tok.Kind) + ":" + tk.Text(tok)
		if got != want[i] {
			t.Errorf("token #%d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestLongestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	// "ifx" must come back as one identifier, not keyword plus identifier
	tk := makeTokenizer(t, tinyGrammar, "ifx")
	expectTokens(t, tk, []string{"ident:ifx"})
}

func TestKeywordBeatsIdent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	tk := makeTokenizer(t, tinyGrammar, "if x if2")
	expectTokens(t, tk, []string{"kwif:if", "ws: ", "ident:x", "ws: ", "ident:if2"})
}

func TestBacktrackToLastAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	// after "12" the scanner speculates into "12." but must fall back
	tk := makeTokenizer(t, `
real : [0-9]+ . [0-9]+
num  : [0-9]+
dot  : .
`, "12.5 12.")
	expectTokens(t, tk, []string{"real:12.5", "invalid: ", "num:12", "dot:."})
}

func TestInvalidBytesTileInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	input := "ab\xff\xffcd"
	tk := makeTokenizer(t, tinyGrammar, input)
	tokens := tk.Tokens()
	var pos uint64
	for _, tok := range tokens {
		if tok.Span.From() != pos {
			t.Fatalf("spans must tile the input, token %v starts at %d, expected %d",
				tok, tok.Span.From(), pos)
		}
		pos = tok.Span.To()
	}
	if pos != uint64(len(input)) {
		t.Fatalf("spans must cover the input up to %d, got %d", len(input), pos)
	}
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %v", tokens)
	}
	for _, i := range []int{1, 2} {
		if tokens[i].Kind != lexion.KindInvalid || tokens[i].Span.Len() != 1 {
			t.Errorf("byte 0xff should scan as a length-one invalid token, got %v", tokens[i])
		}
	}
}

func TestIncompleteAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	tk := makeTokenizer(t, `str : " [$Any - "]* "`+"\n", `"abc`)
	tokens := tk.Tokens()
	if len(tokens) != 1 || tokens[0].Kind != lexion.KindIncomplete {
		t.Fatalf("an unterminated string should scan as incomplete, got %v", tokens)
	}
	if tokens[0].Span.Len() != 4 {
		t.Errorf("the incomplete token should cover the rest of the input")
	}
}

func TestNoneAtEndForever(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	tk := makeTokenizer(t, tinyGrammar, "x")
	tk.Tokens()
	for i := 0; i < 3; i++ {
		tok := tk.NextToken()
		if tok.Kind != lexion.KindNone || tok.Span.Len() != 0 {
			t.Fatalf("expected a none token with an empty span, got %v", tok)
		}
	}
}

const modedGrammar = `
# patterns
text   : [a-z]+
dquote : "
chars  : [$Any - "]+

# modes
main   : text dquote
string : chars dquote

# transitions
main   : dquote -> push string
string : dquote -> pop
`

func TestModeStackBalance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	tk := makeTokenizer(t, modedGrammar, `abc"in if"xyz`)
	if tk.Depth() != 1 || tk.Mode() != "main" {
		t.Fatalf("a fresh tokenizer should sit in the root mode")
	}
	expectTokens(t, tk, []string{
		"text:abc", "dquote:\"", "chars:in if", "dquote:\"", "text:xyz",
	})
	if tk.Depth() != 1 || tk.Mode() != "main" {
		t.Errorf("balanced quotes should drain the mode stack back to the root")
	}
}

func TestModeStackDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	tk := makeTokenizer(t, modedGrammar, `ab"rest`)
	tk.NextToken() // text
	tk.NextToken() // dquote, pushes
	if tk.Depth() != 2 || tk.Mode() != "string" {
		t.Errorf("an open quote should leave the tokenizer inside the string mode")
	}
}

func TestInMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.scan")
	defer teardown()
	//
	g, err := grammar.Parse(t.Name(), modedGrammar)
	if err != nil {
		t.Fatal(err)
	}
	a, err := automata.Compile(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	tk := New(a, []byte(`inside"`), InMode("string"))
	if tk.Mode() != "string" {
		t.Fatalf("expected tokenizer to start in the string mode")
	}
	tok := tk.NextToken()
	if tk.KindName(tok.Kind) != "chars" {
		t.Errorf("expected a chars token, got %v", tok)
	}
}
