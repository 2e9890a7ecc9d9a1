// Package lunimport caches the token stream produced by lexing a .lunf
// source file, keyed on the file's content hash, so that a script imported
// or ejecutar'd repeatedly (the module system's common case — a library's
// companion script, a hot-path ejecutar loop) skips lexing on a cache hit.
// Grounded on the teacher's rezi.EncBinary/DecBinary usage in
// server/dao/sqlite/sqlite.go and sessions.go, which round-trip plain
// exported-field structs with no MarshalBinary methods or struct tags
// anywhere in the teacher's tree — meaning rezi works over concrete,
// reflectable field types. lunlex.Token.Value is `interface{}` (int64,
// float64, string, or nil), which rezi has no registered concrete type for,
// so the cache record flattens each token into a tagged union of concrete
// fields rather than round-tripping Token directly. The parsed AST is not
// cached: lunast.Node is an interface with roughly two dozen concrete
// implementations, and hand-rolling that taxonomy through a library whose
// exact reflection behavior this codebase has no example of is not worth
// the risk — re-parsing a cached token stream is cheap.
package lunimport

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/dekarrin/rezi"

	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// valueKind tags which concrete type, if any, a cached token's Value held.
type valueKind int

const (
	valueNone valueKind = iota
	valueInt
	valueFloat
	valueString
)

// tokenRecord is the rezi-friendly flattening of one lunlex.Token. Position
// is flattened too (rather than nested) since FullText would otherwise
// duplicate the entire source once per token.
type tokenRecord struct {
	Kind      int
	ValueKind int
	IntVal    int64
	FloatVal  float64
	StrVal    string

	StartIdx  int
	StartLine int
	StartCol  int

	EndIdx  int
	EndLine int
	EndCol  int
}

// cacheFile is the on-disk shape of a <file>.lunfc cache entry.
type cacheFile struct {
	Hash   string
	Tokens []tokenRecord
}

// cachePath returns the cache sidecar path for a .lunf source file, e.g.
// "foo.lunf" -> "foo.lunfc".
func cachePath(sourcePath string) string {
	return sourcePath + "c"
}

// contentHash hashes source text so a stale cache entry (source edited
// since the cache was written) is detected and discarded rather than
// trusted.
func contentHash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func toRecord(tok lunlex.Token) tokenRecord {
	rec := tokenRecord{
		Kind:      int(tok.Kind),
		StartIdx:  tok.PosStart.Idx,
		StartLine: tok.PosStart.Line,
		StartCol:  tok.PosStart.Col,
		EndIdx:    tok.PosEnd.Idx,
		EndLine:   tok.PosEnd.Line,
		EndCol:    tok.PosEnd.Col,
	}
	switch v := tok.Value.(type) {
	case int64:
		rec.ValueKind = int(valueInt)
		rec.IntVal = v
	case float64:
		rec.ValueKind = int(valueFloat)
		rec.FloatVal = v
	case string:
		rec.ValueKind = int(valueString)
		rec.StrVal = v
	default:
		rec.ValueKind = int(valueNone)
	}
	return rec
}

// fromRecord rebuilds a Token from rec. filename and fullText are threaded
// back in from the call site since they're shared across every token in a
// file and weren't stored per-record.
func fromRecord(rec tokenRecord, filename, fullText string) lunlex.Token {
	var value interface{}
	switch valueKind(rec.ValueKind) {
	case valueInt:
		value = rec.IntVal
	case valueFloat:
		value = rec.FloatVal
	case valueString:
		value = rec.StrVal
	}

	mkPos := func(idx, line, col int) lunlex.Position {
		return lunlex.Position{Idx: idx, Line: line, Col: col, Filename: filename, FullText: fullText}
	}

	return lunlex.Token{
		Kind:     lunlex.Kind(rec.Kind),
		Value:    value,
		PosStart: mkPos(rec.StartIdx, rec.StartLine, rec.StartCol),
		PosEnd:   mkPos(rec.EndIdx, rec.EndLine, rec.EndCol),
	}
}

// Load returns the cached token stream for sourcePath if a <file>.lunfc
// sidecar exists and its stored hash matches source's current content. A
// missing or stale cache is reported via ok == false, never an error: a
// cache miss just means "lex normally."
func Load(sourcePath string, source []byte, filename string) (tokens []lunlex.Token, ok bool) {
	data, err := os.ReadFile(cachePath(sourcePath))
	if err != nil {
		return nil, false
	}

	var rec cacheFile
	n, err := rezi.DecBinary(data, &rec)
	if err != nil || n != len(data) {
		return nil, false
	}
	if rec.Hash != contentHash(source) {
		return nil, false
	}

	fullText := string(source)
	tokens = make([]lunlex.Token, len(rec.Tokens))
	for i, tr := range rec.Tokens {
		tokens[i] = fromRecord(tr, filename, fullText)
	}
	return tokens, true
}

// Store writes the <file>.lunfc sidecar for sourcePath. A write failure is
// silently ignored by callers that treat caching as a pure optimization —
// Store itself still reports the error so a caller that cares (e.g. a
// future `--no-cache` diagnostic) can surface it.
func Store(sourcePath string, source []byte, tokens []lunlex.Token) error {
	rec := cacheFile{Hash: contentHash(source), Tokens: make([]tokenRecord, len(tokens))}
	for i, tok := range tokens {
		rec.Tokens[i] = toRecord(tok)
	}

	data := rezi.EncBinary(rec)
	return os.WriteFile(cachePath(sourcePath), data, 0o644)
}
