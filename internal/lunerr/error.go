// Package lunerr implements Lunfardo's tagged error model: lex/parse-time
// errors, runtime errors with traceback generation across context frames,
// and the user-visible formatted rendering of both.
package lunerr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Tag values, per the error taxonomy. Lex/parse-time tags are produced
// directly by lunlex/lunparse; runtime tags are produced by the evaluator.
const (
	TagIllegalChar    = "caracter_ilegal"
	TagInvalidSyntax  = "sintaxis_invalida"
	TagExpectedChar   = "caracter_esperado"
	TagInvalidType    = "bardo_de_tipo"
	TagInvalidIndex   = "bardo_de_indice"
	TagInvalidKey     = "bardo_de_clave"
	TagInvalidValue   = "bardo_de_valor"
	TagUndefinedVar   = "variable_indefinida"
	TagZeroDivision   = "division_por_cero"
	TagMaxRecursion   = "limite_de_recursion"
	TagAttributeError = "bardo_de_atributo"
	TagFileNotFound   = "archivo_no_encontrado"
)

var headlines = map[string]string{
	TagIllegalChar:    "[Carácter ilegal] Flaco, fijate que metiste un carácter mal",
	TagInvalidSyntax:  "No te entiendo nada, boludo",
	TagExpectedChar:   "[Carácter esperado] Flaco, fijate que te olvidaste de un carácter",
	TagInvalidType:    "LOCO, ENCIMA TENGO QUE ANDAR MARCANDOTE LOS ERRORES, TARADO",
	TagInvalidIndex:   "Dale, una bien te pido nada mas",
	TagInvalidKey:     "A ver, correte y traeme a alguien que sepa programar (y agarra el mataburros que no muerde)",
	TagInvalidValue:   "Y este bardo de valor de dónde salió",
	TagUndefinedVar:   "Quién es ese tal",
	TagZeroDivision:   "Ni en pedo te dejo dividir por cero",
	TagMaxRecursion:   "Te fuiste al pasto con la recursión",
	TagAttributeError: "Ese coso no tiene eso",
	TagFileNotFound:   "No encuentro ese fichero, percanta",
}

// TracebackFrame is one context frame contributing a line to a runtime
// error's traceback: the position the error (or the call into the next
// inner frame) occurred at, and the display name of the context.
type TracebackFrame struct {
	Pos         lunlex.Position
	DisplayName string
}

// Error is the single error value produced anywhere in the Lunfardo
// pipeline: lexing, parsing, and evaluation all return *Error instead of a
// bare error, carrying the source span and a tag usable by proba/bardea.
type Error struct {
	Tag      string
	Details  string
	PosStart lunlex.Position
	PosEnd   lunlex.Position

	// Runtime errors carry a traceback across the context chain active at
	// the point of the error. Frames is ordered outermost-first; rendering
	// walks it to produce "most recent call last" per the chosen resolution
	// of the traceback-ordering ambiguity.
	Runtime bool
	Frames  []TracebackFrame
}

func New(tag string, start, end lunlex.Position, details string) *Error {
	return &Error{Tag: tag, Details: details, PosStart: start, PosEnd: end}
}

// FromLex lifts a lunlex.LexError into the richer Error type, keeping
// lunlex itself free of a dependency on this package.
func FromLex(e *lunlex.LexError) *Error {
	return New(e.Tag, e.PosStart, e.PosEnd, e.Details)
}

// NewRuntime builds a runtime error that will render a traceback, given the
// frames active when the error was raised (outermost context first).
func NewRuntime(tag string, start, end lunlex.Position, details string, frames []TracebackFrame) *Error {
	return &Error{
		Tag: tag, Details: details, PosStart: start, PosEnd: end,
		Runtime: true, Frames: frames,
	}
}

func (e *Error) Error() string {
	if e.Tag == "" {
		return e.Details
	}
	return fmt.Sprintf("%s: %s", e.Tag, e.Details)
}

func headline(tag string) string {
	if h, ok := headlines[tag]; ok {
		return h
	}
	return tag
}

// AsString renders the full user-visible error message: headline, details,
// file/line, source snippet with an arrow pointing at the offending span,
// and for runtime errors a traceback prepended across context frames.
func (e *Error) AsString() string {
	var sb strings.Builder

	if e.Runtime {
		sb.WriteString(e.traceback())
		sb.WriteString(fmt.Sprintf("Error en tiempo de ejecución: %s", e.Details))
	} else {
		sb.WriteString(fmt.Sprintf("[%s]\n%s", headline(e.Tag), e.Details))
	}

	sb.WriteString(fmt.Sprintf("\nFichero %s, linea %d\n", e.PosStart.Filename, e.PosStart.Line+1))
	sb.WriteString(stringWithArrows(e.PosStart.FullText, e.PosStart, e.PosEnd))

	return rosed.Edit(sb.String()).Wrap(100).String()
}

// traceback renders the context-frame chain leading up to the error,
// most-recent-call-last, per spec.md's resolution of the original's
// inconsistent ordering across revisions.
func (e *Error) traceback() string {
	if len(e.Frames) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Seguimiento del quilombo (la llamada más reciente está última):\n")
	for _, f := range e.Frames {
		sb.WriteString(fmt.Sprintf("  Fichero %s, línea %d, en %s\n", f.Pos.Filename, f.Pos.Line+1, f.DisplayName))
	}
	return sb.String()
}

// stringWithArrows reproduces the source line(s) spanned by [start, end) and
// a caret line under them pointing at the offending column range.
func stringWithArrows(text string, start, end lunlex.Position) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)

	idxStart := lastIndexByte(runes, '\n', start.Idx)
	if idxStart < 0 {
		idxStart = 0
	} else {
		idxStart++
	}
	idxEnd := indexByte(runes, '\n', idxStart+1)
	if idxEnd < 0 {
		idxEnd = len(runes)
	}

	lineCount := end.Line - start.Line + 1
	if lineCount < 1 {
		lineCount = 1
	}

	var sb strings.Builder
	for i := 0; i < lineCount; i++ {
		if idxStart > len(runes) {
			idxStart = len(runes)
		}
		if idxEnd > len(runes) {
			idxEnd = len(runes)
		}
		line := string(runes[idxStart:idxEnd])

		colStart := 0
		if i == 0 {
			colStart = start.Col
		}
		colEnd := len(line) - 1
		if i == lineCount-1 {
			colEnd = end.Col
		}
		if colEnd < colStart {
			colEnd = colStart
		}

		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", colStart))
		sb.WriteString(strings.Repeat("^", colEnd-colStart+1))
		if i < lineCount-1 {
			sb.WriteString("\n")
		}

		idxStart = idxEnd + 1
		idxEnd = indexByte(runes, '\n', idxStart+1)
		if idxEnd < 0 {
			idxEnd = len(runes)
		}
	}

	return strings.ReplaceAll(sb.String(), "\t", "")
}

func indexByte(runes []rune, b rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(runes); i++ {
		if runes[i] == b {
			return i
		}
	}
	return -1
}

func lastIndexByte(runes []rune, b rune, upTo int) int {
	if upTo > len(runes) {
		upTo = len(runes)
	}
	for i := upTo - 1; i >= 0; i-- {
		if runes[i] == b {
			return i
		}
	}
	return -1
}
