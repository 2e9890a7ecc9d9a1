package lunfardo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// stdin is the reader `morfar` reads a line from. It is a package variable
// (not hardcoded to os.Stdin) so the script execution service (server/) can
// point it at a per-request buffer instead of the process's real stdin.
var stdin = bufio.NewReader(os.Stdin)

// Stdout is where `matear` writes. Exposed so the CLI/REPL and the script
// execution service can each redirect interpreter output independently of
// the process's real stdout.
var Stdout io.Writer = os.Stdout

// ReadRune reads one rune from the interpreter's shared input stream. It
// exists for host library adapters (internal/lunlib's gualichos façade)
// that need raw character input outside morfar's line-buffered contract,
// without opening a second handle onto stdin.
func ReadRune() (rune, error) {
	r, _, err := stdin.ReadRune()
	return r, err
}

func arg(ctx *Context, name string) Value {
	v, ok := ctx.Env.Get(name)
	if !ok {
		return NilValue
	}
	return v
}

func typeError(v Value, details string) *lunerr.Error {
	return lunerr.NewRuntime(lunerr.TagInvalidType, v.Start(), v.End(), details, nil)
}

func valueError(v Value, details string) *lunerr.Error {
	return lunerr.NewRuntime(lunerr.TagInvalidValue, v.Start(), v.End(), details, nil)
}

// NewGlobalEnvironment builds the root Environment with every name spec.md
// §6 requires predefined, then returns the root Context wrapping it — the
// interpreter's single process-wide, logically-read-only-after-setup scope.
func NewGlobalEnvironment() *Context {
	ctx := NewContext("<programa>", nil, lunlex.Position{})
	ctx.Env = NewEnvironment(nil)
	env := ctx.Env

	env.Set("nada", NilValue)
	env.Set("posta", Posta)
	env.Set("trucho", Trucho)

	register := func(name string, params []string, fn BuiltinFunc) {
		env.Set(name, NewBuiltin(name, params, fn))
	}
	registerWithDefault := func(name, param string, def Value, fn BuiltinFunc) {
		b := NewBuiltin(name, []string{param}, fn)
		b.Defaults[0] = def
		env.Set(name, b)
	}

	register("matear", []string{"value"}, builtinMatear)
	register("morfar", []string{"value"}, builtinMorfar)
	register("limpiavidrios", nil, builtinLimpiavidrios)

	register("es_num", []string{"value"}, typePredicate(func(v Value) bool { _, ok := v.(*Number); return ok }))
	register("es_chamu", []string{"value"}, typePredicate(func(v Value) bool { _, ok := v.(*String); return ok }))
	register("es_coso", []string{"value"}, typePredicate(func(v Value) bool { _, ok := v.(*List); return ok }))
	register("es_laburo", []string{"value"}, typePredicate(func(v Value) bool {
		switch v.(type) {
		case *Function, *Builtin:
			return true
		default:
			return false
		}
	}))
	register("es_mataburros", []string{"value"}, typePredicate(func(v Value) bool { _, ok := v.(*Dict); return ok }))

	register("chamu", []string{"value"}, builtinChamu)
	register("num", []string{"value"}, builtinNum)

	register("guardar", []string{"list", "value"}, builtinGuardar)
	register("insertar", []string{"list", "index", "value"}, builtinInsertar)
	register("cambiaso", []string{"list", "index", "value"}, builtinCambiaso)
	register("sacar", []string{"list", "index"}, builtinSacar)
	register("extender", []string{"listA", "listB"}, builtinExtender)

	register("agarra_de", []string{"dict", "key"}, builtinAgarraDe)
	register("metele_en", []string{"dict", "key", "value"}, builtinMeteleEn)
	register("borra_de", []string{"dict", "key"}, builtinBorraDe)
	register("existe_clave", []string{"dict", "key"}, builtinExisteClave)

	register("longitud", []string{"arg"}, builtinLongitud)
	register("ejecutar", []string{"fn"}, builtinEjecutar)
	register("renuncio", nil, builtinRenuncio)
	registerWithDefault("contexto", "local", Trucho, builtinContexto)

	register("asciiAchamu", []string{"ascii_code"}, builtinAsciiAchamu)

	return ctx
}

func typePredicate(check func(Value) bool) BuiltinFunc {
	return func(ctx *Context) (Value, *lunerr.Error) {
		return boolFor(check(arg(ctx, "value"))), nil
	}
}

func builtinMatear(ctx *Context) (Value, *lunerr.Error) {
	value := arg(ctx, "value")
	if _, isNil := value.(*Nada); isNil {
		fmt.Fprintln(Stdout)
	} else if s, ok := value.(*String); ok {
		fmt.Fprintln(Stdout, s.Value)
	} else {
		fmt.Fprintln(Stdout, value.String())
	}
	return NilValue, nil
}

func builtinMorfar(ctx *Context) (Value, *lunerr.Error) {
	value := arg(ctx, "value")
	if s, ok := value.(*String); ok {
		fmt.Fprint(Stdout, s.Value)
	}
	line, err := stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, lunerr.NewRuntime(lunerr.TagFileNotFound, lunlex.Position{}, lunlex.Position{},
			fmt.Sprintf("no pude leer de la entrada: %s", err.Error()), nil)
	}
	line = trimNewline(line)
	return NewString(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func builtinLimpiavidrios(ctx *Context) (Value, *lunerr.Error) {
	fmt.Fprint(Stdout, "\x1b[2J\x1b[H")
	return NilValue, nil
}

func builtinChamu(ctx *Context) (Value, *lunerr.Error) {
	value := arg(ctx, "value")
	switch v := value.(type) {
	case *Number:
		return NewString(v.String()), nil
	case *String:
		return NewString(v.Value), nil
	case *List:
		return NewString(v.String()), nil
	case *Function, *Builtin:
		return NewString(value.String()), nil
	default:
		return nil, typeError(value, "El argumento solo puede ser numero, chamuyo, coso o laburo.")
	}
}

func builtinNum(ctx *Context) (Value, *lunerr.Error) {
	value := arg(ctx, "value")
	switch v := value.(type) {
	case *Number:
		return v, nil
	case *String:
		if i, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			return NewInt(i), nil
		}
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return NewFloat(f), nil
		}
		return nil, valueError(v, fmt.Sprintf("Literal invalido para 'num()' con base 10: '%s'", v.Value))
	default:
		return nil, typeError(value, "El argumento de num() debe ser un chamuyo o un número, no un 'laburo'")
	}
}

func builtinGuardar(ctx *Context) (Value, *lunerr.Error) {
	list, ok := arg(ctx, "list").(*List)
	if !ok {
		return nil, typeError(arg(ctx, "list"), "El argumento debe ser de tipo coso")
	}
	list.Elements = append(list.Elements, arg(ctx, "value"))
	return NilValue, nil
}

func builtinInsertar(ctx *Context) (Value, *lunerr.Error) {
	list, ok := arg(ctx, "list").(*List)
	if !ok {
		return nil, typeError(arg(ctx, "list"), "El argumento debe ser de tipo coso")
	}
	index, ok := arg(ctx, "index").(*Number)
	if !ok || index.IsFloat {
		return nil, typeError(arg(ctx, "index"), "El argumento debe ser un entero.")
	}
	i := clampInsertIndex(int(index.IntVal), len(list.Elements))
	list.Elements = append(list.Elements, nil)
	copy(list.Elements[i+1:], list.Elements[i:])
	list.Elements[i] = arg(ctx, "value")
	return NilValue, nil
}

func clampInsertIndex(i, length int) int {
	if i < 0 {
		i += length + 1
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func builtinCambiaso(ctx *Context) (Value, *lunerr.Error) {
	list, ok := arg(ctx, "list").(*List)
	if !ok {
		return nil, typeError(arg(ctx, "list"), "El argumento debe ser de tipo coso")
	}
	index, ok := arg(ctx, "index").(*Number)
	if !ok || index.IsFloat {
		return nil, typeError(arg(ctx, "index"), "El argumento debe ser un entero.")
	}
	idx, ok := resolveIndex(len(list.Elements), index)
	if !ok {
		return nil, lunerr.NewRuntime(lunerr.TagInvalidIndex, index.Start(), index.End(),
			fmt.Sprintf("Elemento con el índice '%s' no pudo ser reemplazado del coso porque el índice está fuera de los límites.", index.String()), nil)
	}
	list.Elements[idx] = arg(ctx, "value")
	return NilValue, nil
}

func builtinSacar(ctx *Context) (Value, *lunerr.Error) {
	list, ok := arg(ctx, "list").(*List)
	if !ok {
		return nil, typeError(arg(ctx, "list"), "El argumento debe ser de tipo coso.")
	}
	index, ok := arg(ctx, "index").(*Number)
	if !ok {
		return nil, typeError(arg(ctx, "index"), "El argumento debe ser de tipo numero.")
	}
	idx, ok := resolveIndex(len(list.Elements), index)
	if !ok {
		return nil, lunerr.NewRuntime(lunerr.TagInvalidIndex, index.Start(), index.End(),
			fmt.Sprintf("Elemento con el índice '%s' no pudo ser removido del coso porque el índice está fuera de los límites.", index.String()), nil)
	}
	popped := list.Elements[idx]
	list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
	return popped, nil
}

func builtinExtender(ctx *Context) (Value, *lunerr.Error) {
	listA, ok := arg(ctx, "listA").(*List)
	if !ok {
		return nil, typeError(arg(ctx, "listA"), "El argumento debe ser de tipo coso")
	}
	listB, ok := arg(ctx, "listB").(*List)
	if !ok {
		return nil, typeError(arg(ctx, "listB"), "El argumento debe ser de tipo coso")
	}
	listA.Elements = append(listA.Elements, listB.Elements...)
	return NilValue, nil
}

func builtinAgarraDe(ctx *Context) (Value, *lunerr.Error) {
	dict, ok := arg(ctx, "dict").(*Dict)
	if !ok {
		return nil, typeError(arg(ctx, "dict"), "El argumento debe ser de tipo mataburros")
	}
	return dict.Get(arg(ctx, "key"))
}

func builtinMeteleEn(ctx *Context) (Value, *lunerr.Error) {
	dict, ok := arg(ctx, "dict").(*Dict)
	if !ok {
		return nil, typeError(arg(ctx, "dict"), "El argumento debe ser de tipo mataburros")
	}
	if err := dict.Set(arg(ctx, "key"), arg(ctx, "value")); err != nil {
		return nil, err
	}
	return NilValue, nil
}

func builtinBorraDe(ctx *Context) (Value, *lunerr.Error) {
	dict, ok := arg(ctx, "dict").(*Dict)
	if !ok {
		return nil, typeError(arg(ctx, "dict"), "El argumento debe ser de tipo mataburros")
	}
	if err := dict.Delete(arg(ctx, "key")); err != nil {
		return nil, err
	}
	return NilValue, nil
}

func builtinExisteClave(ctx *Context) (Value, *lunerr.Error) {
	dict, ok := arg(ctx, "dict").(*Dict)
	if !ok {
		return nil, typeError(arg(ctx, "dict"), "El argumento debe ser de tipo mataburros")
	}
	v, err := dict.Get(arg(ctx, "key"))
	if err != nil {
		return nil, err
	}
	if _, missing := v.(*Nada); missing {
		return NilValue, nil
	}
	return Posta, nil
}

func builtinLongitud(ctx *Context) (Value, *lunerr.Error) {
	value := arg(ctx, "arg")
	switch v := value.(type) {
	case *String:
		return NewInt(int64(utf8.RuneCountInString(v.Value))), nil
	case *List:
		return NewInt(int64(len(v.Elements))), nil
	case *Dict:
		return NewInt(int64(len(v.Keys()))), nil
	default:
		return nil, typeError(value, "El argumento debe ser de tipo chamuyo, coso o mataburros")
	}
}

func builtinEjecutar(ctx *Context) (Value, *lunerr.Error) {
	name, ok := arg(ctx, "fn").(*String)
	if !ok {
		return nil, typeError(arg(ctx, "fn"), "El argumento debe ser de tipo chamuyo")
	}
	path, found := resolveScriptPath(name.Value, ctx)
	if !found {
		return nil, lunerr.NewRuntime(lunerr.TagFileNotFound, name.Start(), name.End(),
			fmt.Sprintf("Uy que rompimo! No pudimos abrir el archivo '%s'\n El archivo no existe.", name.Value), nil)
	}
	scriptCtx := NewContext(name.Value, rootContext(ctx), name.Start())
	scriptCtx.Env = NewEnvironment(rootContext(ctx).Env)
	if _, err := runScriptInContext(path, scriptCtx); err != nil {
		return nil, lunerr.NewRuntime(lunerr.TagFileNotFound, name.Start(), name.End(),
			fmt.Sprintf("Uy que rompimo! No pudimos terminar de ejecutar el fichero '%s'\n'%s", name.Value, err.AsString()), nil)
	}
	return NilValue, nil
}

// renuncioQuit is called by builtinRenuncio; a package variable so tests can
// replace it instead of exercising a real process exit.
var renuncioQuit = func() { os.Exit(0) }

func builtinRenuncio(ctx *Context) (Value, *lunerr.Error) {
	renuncioQuit()
	return NilValue, nil
}

// builtinContexto returns an immutable snapshot of reachable symbol names,
// per spec.md §9's resolution of the original's mutable-handle bug: `local`
// (default trucho) selects the current scope's bindings versus the root
// global scope's.
func builtinContexto(ctx *Context) (Value, *lunerr.Error) {
	local, _ := arg(ctx, "local").(*Boolean)
	target := rootContext(ctx)
	if local != nil && local.Value {
		target = ctx
	}

	names := target.Env.Names()
	sort.Strings(names)
	elements := make([]Value, len(names))
	for i, name := range names {
		elements[i] = NewString(name)
	}
	return NewList(elements), nil
}

func builtinAsciiAchamu(ctx *Context) (Value, *lunerr.Error) {
	code, ok := arg(ctx, "ascii_code").(*Number)
	if !ok {
		return nil, typeError(arg(ctx, "ascii_code"), "El argumento debe ser de tipo numero")
	}
	r := rune(code.IntVal)
	if code.IsFloat || !utf8.ValidRune(r) {
		return nil, valueError(code, "ese número no es un código de carácter Unicode válido")
	}
	return NewString(string(r)), nil
}
