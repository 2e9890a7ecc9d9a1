package lunlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(toks []Token) []Kind {
	ks := make([]Kind, 0, len(toks))
	for _, t := range toks {
		ks = append(ks, t.Kind)
	}
	return ks
}

func Test_Scan_kindSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Kind
	}{
		{name: "empty", input: "", expect: []Kind{EOF}},
		{name: "int", input: "42", expect: []Kind{Int, EOF}},
		{name: "float", input: "3.14", expect: []Kind{Float, EOF}},
		{name: "float with trailing extra dot stops number", input: "1.2.3", expect: []Kind{Float, Dot, Int, EOF}},
		{name: "arithmetic precedence tokens", input: "2 + 3 * 4", expect: []Kind{
			Int, Plus, Int, Mul, Int, EOF,
		}},
		{name: "string literal", input: `"hola"`, expect: []Kind{String, EOF}},
		{name: "empty string literal", input: `""`, expect: []Kind{String, EOF}},
		{name: "identifier", input: "variable_1", expect: []Kind{Identifier, EOF}},
		{name: "keyword poneleque", input: "poneleque", expect: []Kind{Keyword, EOF}},
		{name: "comment to end of line", input: "1 # un comentario\n2", expect: []Kind{
			Int, Newline, Int, EOF,
		}},
		{name: "semicolon is newline", input: "1;2", expect: []Kind{Int, Newline, Int, EOF}},
		{name: "comparisons", input: "== != < > <= >=", expect: []Kind{
			EE, NE, LT, GT, LTE, GTE, EOF,
		}},
		{name: "assignment vs equality", input: "= ==", expect: []Kind{EQ, EE, EOF}},
		{name: "minus vs arrow", input: "- ->", expect: []Kind{Minus, Arrow, EOF}},
		{name: "grouping and delimiters", input: "([{,:.}])", expect: []Kind{
			LParen, LBracket, LBrace, Comma, Colon, Dot, RBrace, RBracket, RParen, EOF,
		}},
		{name: "power operator", input: "2 ^ 3", expect: []Kind{Int, Pow, Int, EOF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := Scan("<test>", tc.input)
			if !assert.Nil(t, err) {
				return
			}
			assert.Equal(t, tc.expect, kinds(toks))
		})
	}
}

func Test_Scan_stringEscapes(t *testing.T) {
	toks, err := Scan("<test>", `"a\nb\tc\qd"`)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "a\nb\tcqd", toks[0].Str())
}

func Test_Scan_unterminatedString(t *testing.T) {
	_, err := Scan("<test>", `"sin cerrar`)
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "caracter_esperado", err.Tag)
}

func Test_Scan_bareBangIsError(t *testing.T) {
	_, err := Scan("<test>", "!")
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "caracter_esperado", err.Tag)
}

func Test_Scan_illegalChar(t *testing.T) {
	_, err := Scan("<test>", "@")
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "caracter_ilegal", err.Tag)
}

func Test_Scan_numberValues(t *testing.T) {
	toks, err := Scan("<test>", "7 2.5")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, int64(7), toks[0].Value)
	assert.Equal(t, 2.5, toks[1].Value)
}

func Test_Scan_keywordRecognition(t *testing.T) {
	for kw := range Keywords {
		toks, err := Scan("<test>", kw)
		if !assert.Nilf(t, err, "keyword %q", kw) {
			continue
		}
		assert.Equalf(t, Keyword, toks[0].Kind, "keyword %q", kw)
		assert.Truef(t, toks[0].Matches(Keyword, kw), "keyword %q", kw)
	}
}

func Test_Scan_positionTracking(t *testing.T) {
	toks, err := Scan("<test>", "1\n22")
	if !assert.Nil(t, err) {
		return
	}
	// the "22" token should be on line 1 (0-indexed internally)
	var intTok Token
	for _, tk := range toks {
		if tk.Kind == Int && tk.Value == int64(22) {
			intTok = tk
		}
	}
	assert.Equal(t, 1, intTok.PosStart.Line)
	assert.GreaterOrEqual(t, intTok.PosEnd.Idx, intTok.PosStart.Idx)
}
