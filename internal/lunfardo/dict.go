package lunfardo

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Dict is Lunfardo's Mataburros. Unlike the original's unhashed parallel
// key/value lists, this is a genuine bucketed hash table: keys are hashed
// via hashableKey into a bucket index, and the table doubles in size
// whenever insertion would push the load factor over 0.7.
type Dict struct {
	ValueBase
	buckets [][]dictEntry
	count   int
}

type dictEntry struct {
	keyText string // canonical display form, used for iteration/printing
	key     Value
	value   Value
}

const dictInitialBuckets = 8
const dictMaxLoadFactor = 0.7

func NewDict() *Dict {
	return &Dict{buckets: make([][]dictEntry, dictInitialBuckets)}
}

func (d *Dict) TypeName() string { return "mataburros" }

func (d *Dict) String() string {
	var parts []string
	for _, e := range d.orderedEntries() {
		parts = append(parts, fmt.Sprintf("%s: %s", e.key.String(), e.value.String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *Dict) WithPos(start, end lunlex.Position) Value {
	c := *d
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (d *Dict) WithContext(ctx *Context) Value {
	c := *d
	c.Context = ctx
	return &c
}

func (d *Dict) Copy() Value {
	newBuckets := make([][]dictEntry, len(d.buckets))
	for i, bucket := range d.buckets {
		newBuckets[i] = append([]dictEntry(nil), bucket...)
	}
	c := *d
	c.buckets = newBuckets
	return &c
}

func (d *Dict) IsTrue() bool { return d.count > 0 }

// hashableKey reports whether v can be a dict key, per spec.md's parser-time
// rejection of List/Dict keys — enforced here at evaluation time since keys
// are arbitrary expressions and the restriction isn't decidable at parse
// time.
func hashableKey(v Value) (string, bool) {
	switch k := v.(type) {
	case *Number:
		return "n:" + k.String(), true
	case *String:
		return "s:" + k.Value, true
	case *Boolean:
		return "b:" + k.String(), true
	case *Nada:
		return "nil", true
	default:
		return "", false
	}
}

func bucketIndex(keyText string, numBuckets int) int {
	h := fnv.New32a()
	h.Write([]byte(keyText))
	return int(h.Sum32()) % numBuckets
}

func (d *Dict) loadFactor() float64 {
	return float64(d.count+1) / float64(len(d.buckets))
}

func (d *Dict) maybeResize() {
	if d.loadFactor() <= dictMaxLoadFactor {
		return
	}
	old := d.buckets
	d.buckets = make([][]dictEntry, len(old)*2)
	d.count = 0
	for _, bucket := range old {
		for _, e := range bucket {
			d.insert(e.keyText, e.key, e.value)
		}
	}
}

func (d *Dict) insert(keyText string, key, value Value) {
	idx := bucketIndex(keyText, len(d.buckets))
	for i, e := range d.buckets[idx] {
		if e.keyText == keyText {
			d.buckets[idx][i].value = value
			return
		}
	}
	d.buckets[idx] = append(d.buckets[idx], dictEntry{keyText: keyText, key: key, value: value})
	d.count++
}

// Set inserts or overwrites key -> value, resizing first if needed.
func (d *Dict) Set(key, value Value) *lunerr.Error {
	keyText, ok := hashableKey(key)
	if !ok {
		return lunerr.NewRuntime(lunerr.TagInvalidType, key.Start(), key.End(),
			"esa clave no se puede usar en un mataburros", nil)
	}
	d.maybeResize()
	d.insert(keyText, key, value)
	return nil
}

// Get returns the value bound to key, or NilValue if absent — missing
// lookups are not an error per spec.md, unlike borra_de below.
func (d *Dict) Get(key Value) (Value, *lunerr.Error) {
	keyText, ok := hashableKey(key)
	if !ok {
		return nil, lunerr.NewRuntime(lunerr.TagInvalidType, key.Start(), key.End(),
			"esa clave no se puede usar en un mataburros", nil)
	}
	idx := bucketIndex(keyText, len(d.buckets))
	for _, e := range d.buckets[idx] {
		if e.keyText == keyText {
			return e.value, nil
		}
	}
	return NilValue, nil
}

// Delete removes key, returning a bardo_de_clave error if it was absent.
func (d *Dict) Delete(key Value) *lunerr.Error {
	keyText, ok := hashableKey(key)
	if !ok {
		return lunerr.NewRuntime(lunerr.TagInvalidType, key.Start(), key.End(),
			"esa clave no se puede usar en un mataburros", nil)
	}
	idx := bucketIndex(keyText, len(d.buckets))
	for i, e := range d.buckets[idx] {
		if e.keyText == keyText {
			d.buckets[idx] = append(d.buckets[idx][:i], d.buckets[idx][i+1:]...)
			d.count--
			return nil
		}
	}
	return lunerr.NewRuntime(lunerr.TagInvalidKey, key.Start(), key.End(),
		"esa clave no existe en el mataburros", nil)
}

// orderedEntries returns entries in bucket order — deterministic within a
// run, unspecified across runs, per spec.md.
func (d *Dict) orderedEntries() []dictEntry {
	var out []dictEntry
	for i := range d.buckets {
		out = append(out, d.buckets[i]...)
	}
	return out
}

// Keys returns the dict's keys in bucket order, sorted only for
// deterministic test fixtures that need it — the language-level iteration
// itself uses bucket order directly.
func (d *Dict) Keys() []Value {
	entries := d.orderedEntries()
	keys := make([]Value, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

// sortedKeyTexts is a test/debug helper for asserting dict contents
// independent of bucket ordering.
func (d *Dict) sortedKeyTexts() []string {
	entries := d.orderedEntries()
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.keyText
	}
	sort.Strings(texts)
	return texts
}
