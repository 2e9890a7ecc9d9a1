// Package lunparse implements Lunfardo's recursive-descent,
// operator-precedence-climbing parser: token stream to AST.
package lunparse

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/internal/lunast"
	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// ParseResult is the parser's outcome: either a root node, or an error. The
// EOFOnly flag distinguishes a stream containing only EOF (the REPL's
// empty-input path) from an actual syntax error.
type ParseResult struct {
	Node    lunast.Node
	Err     *lunerr.Error
	EOFOnly bool
}

// Parse consumes the full token stream and returns the root statements node.
func Parse(tokens []lunlex.Token) ParseResult {
	if len(tokens) == 1 && tokens[0].Kind == lunlex.EOF {
		return ParseResult{EOFOnly: true}
	}

	p := &parser{stream: tokenStream{tokens: tokens}}
	node, err := p.parseStatements(nil)
	if err != nil {
		return ParseResult{Err: err}
	}
	if p.stream.Peek().Kind != lunlex.EOF {
		return ParseResult{Err: p.syntaxError("esperaba un operador")}
	}
	return ParseResult{Node: node}
}

// tokenStream is a cursor over a token slice supporting the speculative
// backtracking the grammar's try-then-rewind forms need (e.g. distinguishing
// a declaration from a reassignment without committing).
type tokenStream struct {
	tokens []lunlex.Token
	cur    int
}

func (ts *tokenStream) Peek() lunlex.Token {
	return ts.tokens[ts.cur]
}

func (ts *tokenStream) PeekAt(offset int) lunlex.Token {
	i := ts.cur + offset
	if i >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[i]
}

func (ts *tokenStream) Next() lunlex.Token {
	t := ts.tokens[ts.cur]
	if ts.cur < len(ts.tokens)-1 {
		ts.cur++
	}
	return t
}

func (ts *tokenStream) Mark() int {
	return ts.cur
}

func (ts *tokenStream) Rewind(mark int) {
	ts.cur = mark
}

type parser struct {
	stream       tokenStream
	advanceCount int
}

func (p *parser) advance() lunlex.Token {
	p.advanceCount++
	return p.stream.Next()
}

func (p *parser) at(kind lunlex.Kind) bool {
	return p.stream.Peek().Kind == kind
}

func (p *parser) atKeyword(kw string) bool {
	return p.stream.Peek().Matches(lunlex.Keyword, kw)
}

func (p *parser) syntaxError(expected string) *lunerr.Error {
	t := p.stream.Peek()
	return lunerr.New(lunerr.TagInvalidSyntax, t.PosStart, t.PosEnd,
		fmt.Sprintf("esperaba %s, encontré %s", expected, t.String()))
}

func (p *parser) expect(kind lunlex.Kind, human string) (lunlex.Token, *lunerr.Error) {
	if !p.at(kind) {
		return lunlex.Token{}, p.syntaxError(human)
	}
	return p.advance(), nil
}

func (p *parser) expectKeyword(kw string) *lunerr.Error {
	if !p.atKeyword(kw) {
		return p.syntaxError("'" + kw + "'")
	}
	p.advance()
	return nil
}

func (p *parser) skipNewlines() {
	for p.at(lunlex.Newline) {
		p.advance()
	}
}

// isStatementTerminator reports whether the stream has reached a token that
// ends a statement block: the "chau" closer, EOF, or one of the extra
// terminator keywords supplied by the caller (e.g. "osi"/"sino" for an if
// chain, "bardea" clauses don't need this).
func (p *parser) isBlockEnd(extra ...string) bool {
	if p.at(lunlex.EOF) || p.atKeyword("chau") {
		return true
	}
	for _, kw := range extra {
		if p.atKeyword(kw) {
			return true
		}
	}
	return false
}

// --- statements ---

func (p *parser) parseStatements(terminators []string) (lunast.Node, *lunerr.Error) {
	start := p.stream.Peek().PosStart
	p.skipNewlines()

	var stmts []lunast.Node
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, stmt)

	moreStatements := true
	for {
		newlineCount := 0
		for p.at(lunlex.Newline) {
			p.advance()
			newlineCount++
		}
		if newlineCount == 0 {
			moreStatements = false
		}
		if !moreStatements || p.isBlockEnd(terminators...) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	end := p.stream.Peek().PosStart
	return &lunast.StatementsNode{
		Base:       lunast.NewBase(start, end),
		Statements: stmts,
	}, nil
}

func (p *parser) parseStatement() (lunast.Node, *lunerr.Error) {
	t := p.stream.Peek()

	switch {
	case t.Matches(lunlex.Keyword, "devolver"):
		p.advance()
		var value lunast.Node
		if !p.at(lunlex.Newline) && !p.isBlockEnd() {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			value = v
		}
		return &lunast.ReturnNode{Base: lunast.NewBase(t.PosStart, p.stream.Peek().PosStart), Value: value}, nil

	case t.Matches(lunlex.Keyword, "continuar"):
		p.advance()
		return &lunast.ContinueNode{Base: lunast.NewBase(t.PosStart, t.PosEnd)}, nil

	case t.Matches(lunlex.Keyword, "rajar"):
		p.advance()
		return &lunast.BreakNode{Base: lunast.NewBase(t.PosStart, t.PosEnd)}, nil

	case t.Matches(lunlex.Keyword, "importar"):
		p.advance()
		name, perr := p.expect(lunlex.Identifier, "un nombre de módulo")
		if perr != nil {
			return nil, perr
		}
		return &lunast.ImportNode{Base: lunast.NewBase(t.PosStart, name.PosEnd), ModuleName: name}, nil

	case t.Matches(lunlex.Keyword, "bardea"):
		return p.parseRaise()

	case t.Matches(lunlex.Keyword, "proba"):
		return p.parseTry()

	default:
		return p.parseExpr()
	}
}

func (p *parser) parseRaise() (lunast.Node, *lunerr.Error) {
	start := p.advance() // consume 'bardea'
	tag, err := p.expect(lunlex.Identifier, "una etiqueta de error")
	if err != nil {
		return nil, err
	}
	var msg lunast.Node
	if !p.at(lunlex.Newline) && !p.isBlockEnd() {
		msg, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	end := tag.PosEnd
	if msg != nil {
		end = msg.End()
	}
	return &lunast.RaiseNode{Base: lunast.NewBase(start.PosStart, end), ErrorTag: tag, Message: msg}, nil
}

func (p *parser) parseTry() (lunast.Node, *lunerr.Error) {
	start := p.advance() // consume 'proba'
	tryBody, err := p.parseBlockOrInline([]string{"sibardea"}, "entonces")
	if err != nil {
		return nil, err
	}

	var tag *lunlex.Token
	if err := p.expectKeyword("sibardea"); err != nil {
		return nil, err
	}
	if p.at(lunlex.Identifier) {
		tok := p.advance()
		tag = &tok
	}

	exceptBody, err := p.parseBlockOrInline(nil, "entonces")
	if err != nil {
		return nil, err
	}

	end := p.stream.Peek().PosEnd
	if p.atKeyword("chau") {
		end = p.advance().PosEnd
	}

	return &lunast.TryNode{
		Base:       lunast.NewBase(start.PosStart, end),
		TryBody:    tryBody,
		ErrorTag:   tag,
		ExceptBody: exceptBody,
	}, nil
}

// parseBlockOrInline implements the block convention: if the header keyword
// is immediately followed (after consuming an optional "entonces") by a
// NEWLINE, parse a multi-statement block up to "chau"; otherwise parse a
// single inline statement. introducers names header keywords consumed
// before the body begins, e.g. "entonces".
func (p *parser) parseBlockOrInline(terminators []string, introducers ...string) (lunast.Node, *lunerr.Error) {
	for _, kw := range introducers {
		if p.atKeyword(kw) {
			p.advance()
		}
	}

	if p.at(lunlex.Newline) {
		p.advance()
		body, err := p.parseStatements(terminators)
		if err != nil {
			return nil, err
		}
		return body, nil
	}

	return p.parseStatement()
}

// --- expr and logical ladder ---

func (p *parser) parseExpr() (lunast.Node, *lunerr.Error) {
	if p.atKeyword("poneleque") {
		start := p.advance()
		name, err := p.expect(lunlex.Identifier, "un nombre de variable")
		if err != nil {
			return nil, err
		}
		if perr := p.expectToken(lunlex.EQ, "'='"); perr != nil {
			return nil, perr
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &lunast.VarAssignNode{
			Base:  lunast.NewBase(start.PosStart, value.End()),
			Name:  name,
			Value: value,
		}, nil
	}

	// Speculative reassignment: IDENTIFIER '=' expr, without the leading
	// poneleque keyword. Only committed once the '=' is actually seen.
	if p.at(lunlex.Identifier) && p.stream.PeekAt(1).Kind == lunlex.EQ {
		name := p.advance()
		p.advance() // '='
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &lunast.ReassignNode{
			Base:  lunast.NewBase(name.PosStart, value.End()),
			Name:  name,
			Value: value,
		}, nil
	}

	return p.parseOr()
}

func (p *parser) expectToken(kind lunlex.Kind, human string) *lunerr.Error {
	if !p.at(kind) {
		return p.syntaxError(human)
	}
	p.advance()
	return nil
}

func (p *parser) parseOr() (lunast.Node, *lunerr.Error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("o") {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &lunast.BinOpNode{Base: lunast.NewBase(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (lunast.Node, *lunerr.Error) {
	left, err := p.parseComp()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("y") {
		op := p.advance()
		right, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		left = &lunast.BinOpNode{Base: lunast.NewBase(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left, nil
}

var comparisonKinds = map[lunlex.Kind]bool{
	lunlex.EE: true, lunlex.NE: true, lunlex.LT: true,
	lunlex.GT: true, lunlex.LTE: true, lunlex.GTE: true,
}

func (p *parser) parseComp() (lunast.Node, *lunerr.Error) {
	if p.atKeyword("truchar") {
		op := p.advance()
		operand, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		return &lunast.UnaryOpNode{Base: lunast.NewBase(op.PosStart, operand.End()), Op: op, Node: operand}, nil
	}

	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	for comparisonKinds[p.stream.Peek().Kind] {
		op := p.advance()
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		left = &lunast.BinOpNode{Base: lunast.NewBase(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseArith() (lunast.Node, *lunerr.Error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(lunlex.Plus) || p.at(lunlex.Minus) {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &lunast.BinOpNode{Base: lunast.NewBase(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (lunast.Node, *lunerr.Error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.at(lunlex.Mul) || p.at(lunlex.Div) {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &lunast.BinOpNode{Base: lunast.NewBase(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseFactor() (lunast.Node, *lunerr.Error) {
	if p.at(lunlex.Plus) || p.at(lunlex.Minus) {
		op := p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &lunast.UnaryOpNode{Base: lunast.NewBase(op.PosStart, operand.End()), Op: op, Node: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (lunast.Node, *lunerr.Error) {
	left, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	if p.at(lunlex.Pow) {
		op := p.advance()
		right, err := p.parseFactor() // right-associative: recurse back into factor
		if err != nil {
			return nil, err
		}
		return &lunast.BinOpNode{Base: lunast.NewBase(left.Start(), right.End()), Left: left, Op: op, Right: right}, nil
	}
	return left, nil
}

// --- call / postfix chain ---

func (p *parser) parseCall() (lunast.Node, *lunerr.Error) {
	if p.at(lunlex.Identifier) && p.stream.PeekAt(1).Kind == lunlex.Dot {
		return p.parseAccessChain()
	}

	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for p.at(lunlex.LParen) {
		p.advance()
		args, err := p.parseArgList(lunlex.RParen)
		if err != nil {
			return nil, err
		}
		end, perr := p.expect(lunlex.RParen, "')'")
		if perr != nil {
			return nil, perr
		}
		atom = &lunast.CallNode{Base: lunast.NewBase(atom.Start(), end.PosEnd), Callee: atom, Args: args}
	}
	return atom, nil
}

// parseAccessChain handles the receiver.chain.name family: instance
// variable access, instance variable assignment, and method calls, all of
// which share the "identifier dot identifier (dot identifier)*" prefix and
// are disambiguated by what follows the last segment.
func (p *parser) parseAccessChain() (lunast.Node, *lunerr.Error) {
	receiver := p.advance() // identifier
	p.advance()             // '.'

	var chain []lunlex.Token
	last, err := p.expect(lunlex.Identifier, "un nombre")
	if err != nil {
		return nil, err
	}

	for p.at(lunlex.Dot) {
		p.advance()
		chain = append(chain, last)
		last, err = p.expect(lunlex.Identifier, "un nombre")
		if err != nil {
			return nil, err
		}
	}

	switch {
	case p.at(lunlex.LParen):
		p.advance()
		args, aerr := p.parseArgList(lunlex.RParen)
		if aerr != nil {
			return nil, aerr
		}
		end, perr := p.expect(lunlex.RParen, "')'")
		if perr != nil {
			return nil, perr
		}
		return &lunast.MethodCallNode{
			Base: lunast.NewBase(receiver.PosStart, end.PosEnd),
			Receiver: receiver, AccessChain: chain, Method: last, Args: args,
		}, nil

	case p.at(lunlex.EQ):
		p.advance()
		value, verr := p.parseExpr()
		if verr != nil {
			return nil, verr
		}
		if len(chain) == 0 {
			return &lunast.InstanceVarAssignNode{
				Base: lunast.NewBase(receiver.PosStart, value.End()),
				Receiver: receiver, Name: last, Value: value,
			}, nil
		}
		return &lunast.InstanceVarAccessAndAssignNode{
			Base: lunast.NewBase(receiver.PosStart, value.End()),
			Receiver: receiver, AccessChain: append(chain, last), Value: value,
		}, nil

	default:
		return &lunast.InstanceVarAccessNode{
			Base: lunast.NewBase(receiver.PosStart, last.PosEnd),
			Receiver: receiver, AccessChain: append(chain, last),
		}, nil
	}
}

func (p *parser) parseArgList(closer lunlex.Kind) ([]lunast.Node, *lunerr.Error) {
	var args []lunast.Node
	if p.at(closer) {
		return args, nil
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args = append(args, arg)
	for p.at(lunlex.Comma) {
		p.advance()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// --- atoms ---

func (p *parser) parseAtom() (lunast.Node, *lunerr.Error) {
	t := p.stream.Peek()

	switch {
	case t.Kind == lunlex.Int || t.Kind == lunlex.Float:
		p.advance()
		return &lunast.NumberNode{Base: lunast.NewBase(t.PosStart, t.PosEnd), Tok: t}, nil

	case t.Kind == lunlex.String:
		p.advance()
		return &lunast.StringNode{Base: lunast.NewBase(t.PosStart, t.PosEnd), Tok: t}, nil

	case t.Kind == lunlex.Identifier:
		p.advance()
		return &lunast.VarAccessNode{Base: lunast.NewBase(t.PosStart, t.PosEnd), Name: t}, nil

	case t.Kind == lunlex.LParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lunlex.RParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case t.Kind == lunlex.LBracket:
		return p.parseList()

	case t.Kind == lunlex.LBrace:
		return p.parseDict()

	case t.Matches(lunlex.Keyword, "si"):
		return p.parseIf()

	case t.Matches(lunlex.Keyword, "para"):
		return p.parseFor()

	case t.Matches(lunlex.Keyword, "mientras"):
		return p.parseWhile()

	case t.Matches(lunlex.Keyword, "laburo"):
		return p.parseFuncDef()

	case t.Matches(lunlex.Keyword, "cheto"):
		return p.parseClassDef()

	case t.Matches(lunlex.Keyword, "nuevo"):
		return p.parseInstanceNew()

	default:
		return nil, p.syntaxError("un número, identificador, '+', '-', '(' o una palabra clave")
	}
}

func (p *parser) parseList() (lunast.Node, *lunerr.Error) {
	start := p.advance() // '['
	elements, err := p.parseArgList(lunlex.RBracket)
	if err != nil {
		return nil, err
	}
	end, perr := p.expect(lunlex.RBracket, "']'")
	if perr != nil {
		return nil, perr
	}
	return &lunast.ListNode{Base: lunast.NewBase(start.PosStart, end.PosEnd), Elements: elements}, nil
}

func (p *parser) parseDict() (lunast.Node, *lunerr.Error) {
	start := p.advance() // '{'
	var pairs []lunast.DictPair

	if !p.at(lunlex.RBrace) {
		pair, err := p.parseDictPair()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
		for p.at(lunlex.Comma) {
			p.advance()
			pair, err := p.parseDictPair()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}
	}

	end, err := p.expect(lunlex.RBrace, "'}'")
	if err != nil {
		return nil, err
	}
	return &lunast.DictNode{Base: lunast.NewBase(start.PosStart, end.PosEnd), Pairs: pairs}, nil
}

func (p *parser) parseDictPair() (lunast.DictPair, *lunerr.Error) {
	key, err := p.parseExpr()
	if err != nil {
		return lunast.DictPair{}, err
	}
	if isContainerLiteral(key) {
		return lunast.DictPair{}, lunerr.New(lunerr.TagInvalidSyntax, key.Start(), key.End(),
			"una lista o un mataburros no puede ser clave")
	}
	if perr := p.expectToken(lunlex.Colon, "':'"); perr != nil {
		return lunast.DictPair{}, perr
	}
	value, err := p.parseExpr()
	if err != nil {
		return lunast.DictPair{}, err
	}
	return lunast.DictPair{Key: key, Value: value}, nil
}

func isContainerLiteral(n lunast.Node) bool {
	switch n.(type) {
	case *lunast.ListNode, *lunast.DictNode:
		return true
	default:
		return false
	}
}

func (p *parser) parseIf() (lunast.Node, *lunerr.Error) {
	start := p.advance() // 'si'

	var cases []lunast.IfCase
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, isBlock, err := p.parseBlockOrInlineReportingBlock("entonces")
	if err != nil {
		return nil, err
	}
	cases = append(cases, lunast.IfCase{Condition: cond, Body: body, IsBlock: isBlock})

	for p.atKeyword("osi") {
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body, isBlock, err := p.parseBlockOrInlineReportingBlock("entonces")
		if err != nil {
			return nil, err
		}
		cases = append(cases, lunast.IfCase{Condition: cond, Body: body, IsBlock: isBlock})
	}

	var elseCase *lunast.ElseCase
	end := p.stream.Peek().PosEnd
	if p.atKeyword("sino") {
		p.advance()
		body, isBlock, err := p.parseBlockOrInlineReportingBlock()
		if err != nil {
			return nil, err
		}
		elseCase = &lunast.ElseCase{Body: body, IsBlock: isBlock}
		end = body.End()
	}

	if cases[len(cases)-1].IsBlock || (elseCase != nil && elseCase.IsBlock) {
		if perr := p.expectKeyword("chau"); perr != nil {
			return nil, perr
		}
		end = p.stream.tokens[p.stream.cur-1].PosEnd
	}

	return &lunast.IfNode{Base: lunast.NewBase(start.PosStart, end), Cases: cases, Else: elseCase}, nil
}

// parseBlockOrInlineReportingBlock is parseBlockOrInline but also reports
// whether a block (vs. a single inline statement) was parsed, needed by
// constructs like "si" that only consume a trailing "chau" once per chain.
func (p *parser) parseBlockOrInlineReportingBlock(introducers ...string) (lunast.Node, bool, *lunerr.Error) {
	for _, kw := range introducers {
		if p.atKeyword(kw) {
			p.advance()
		}
	}
	if p.at(lunlex.Newline) {
		p.advance()
		body, err := p.parseStatements([]string{"osi", "sino"})
		if err != nil {
			return nil, false, err
		}
		return body, true, nil
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, false, err
	}
	return stmt, false, nil
}

func (p *parser) parseFor() (lunast.Node, *lunerr.Error) {
	start := p.advance() // 'para'
	name, err := p.expect(lunlex.Identifier, "un nombre de variable")
	if err != nil {
		return nil, err
	}
	if perr := p.expectToken(lunlex.EQ, "'='"); perr != nil {
		return nil, perr
	}
	startVal, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if perr := p.expectKeyword("hasta"); perr != nil {
		return nil, perr
	}
	endVal, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var stepVal lunast.Node
	if p.atKeyword("entre") {
		p.advance()
		stepVal, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	body, isBlock, berr := p.parseBlockOrInlineReportingBlock("entonces")
	if berr != nil {
		return nil, berr
	}
	end := body.End()
	if isBlock {
		if perr := p.expectKeyword("chau"); perr != nil {
			return nil, perr
		}
		end = p.stream.tokens[p.stream.cur-1].PosEnd
	}

	return &lunast.ForNode{
		Base: lunast.NewBase(start.PosStart, end),
		VarName: name, StartValue: startVal, EndValue: endVal, StepValue: stepVal,
		Body: body, ShouldReturnNil: isBlock,
	}, nil
}

func (p *parser) parseWhile() (lunast.Node, *lunerr.Error) {
	start := p.advance() // 'mientras'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, isBlock, berr := p.parseBlockOrInlineReportingBlock("entonces")
	if berr != nil {
		return nil, berr
	}
	end := body.End()
	if isBlock {
		if perr := p.expectKeyword("chau"); perr != nil {
			return nil, perr
		}
		end = p.stream.tokens[p.stream.cur-1].PosEnd
	}
	return &lunast.WhileNode{
		Base: lunast.NewBase(start.PosStart, end),
		Condition: cond, Body: body, ShouldReturnNil: isBlock,
	}, nil
}

func (p *parser) parseFuncDef() (lunast.Node, *lunerr.Error) {
	start := p.advance() // 'laburo'

	var name *lunlex.Token
	if p.at(lunlex.Identifier) {
		tok := p.advance()
		name = &tok
	}

	if perr := p.expectToken(lunlex.LParen, "'('"); perr != nil {
		return nil, perr
	}
	var params []lunast.Param
	if !p.at(lunlex.RParen) {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		for p.at(lunlex.Comma) {
			p.advance()
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}
	if perr := p.expectToken(lunlex.RParen, "')'"); perr != nil {
		return nil, perr
	}

	autoReturn := false
	var body lunast.Node
	var end lunlex.Position

	if p.at(lunlex.Colon) {
		p.advance()
		autoReturn = true
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body = expr
		end = expr.End()
	} else {
		if perr := p.expectToken(lunlex.Newline, "un salto de línea o ':'"); perr != nil {
			return nil, perr
		}
		stmts, err := p.parseStatements(nil)
		if err != nil {
			return nil, err
		}
		body = stmts
		if perr := p.expectKeyword("chau"); perr != nil {
			return nil, perr
		}
		end = p.stream.tokens[p.stream.cur-1].PosEnd
	}

	return &lunast.FuncDefNode{
		Base: lunast.NewBase(start.PosStart, end),
		Name: name, Params: params, Body: body, ShouldAutoReturn: autoReturn,
	}, nil
}

func (p *parser) parseParam() (lunast.Param, *lunerr.Error) {
	name, err := p.expect(lunlex.Identifier, "un nombre de parámetro")
	if err != nil {
		return lunast.Param{}, err
	}
	var def lunast.Node
	if p.at(lunlex.EQ) {
		p.advance()
		def, err = p.parseExpr()
		if err != nil {
			return lunast.Param{}, err
		}
	}
	return lunast.Param{Name: name, Default: def}, nil
}

func (p *parser) parseClassDef() (lunast.Node, *lunerr.Error) {
	start := p.advance() // 'cheto'
	name, err := p.expect(lunlex.Identifier, "un nombre de clase")
	if err != nil {
		return nil, err
	}

	var parent *lunlex.Token
	if p.atKeyword("hereda") {
		p.advance()
		tok, perr := p.expect(lunlex.Identifier, "un nombre de clase padre")
		if perr != nil {
			return nil, perr
		}
		parent = &tok
	}

	if perr := p.expectToken(lunlex.Newline, "un salto de línea"); perr != nil {
		return nil, perr
	}
	p.skipNewlines()

	var methods []*lunast.FuncDefNode
	var ctor *lunast.FuncDefNode

	for !p.atKeyword("chau") && !p.at(lunlex.EOF) {
		if !p.atKeyword("laburo") {
			return nil, p.syntaxError("una definición de método")
		}
		node, err := p.parseFuncDef()
		if err != nil {
			return nil, err
		}
		fn := node.(*lunast.FuncDefNode)
		fn.IsMethod = true
		if fn.Name != nil && fn.Name.Str() == "arranque" {
			ctor = fn
		} else {
			methods = append(methods, fn)
		}
		p.skipNewlines()
	}

	end, cerr := p.expect(lunlex.Keyword, "'chau'")
	if cerr != nil {
		return nil, cerr
	}

	return &lunast.ClassDefNode{
		Base: lunast.NewBase(start.PosStart, end.PosEnd),
		Name: name, Methods: methods, Constructor: ctor, ParentName: parent,
	}, nil
}

func (p *parser) parseInstanceNew() (lunast.Node, *lunerr.Error) {
	start := p.advance() // 'nuevo'
	name, err := p.expect(lunlex.Identifier, "un nombre de clase")
	if err != nil {
		return nil, err
	}

	var args []lunast.Node
	end := name.PosEnd
	if p.at(lunlex.LParen) {
		p.advance()
		args, err = p.parseArgList(lunlex.RParen)
		if err != nil {
			return nil, err
		}
		closeTok, perr := p.expect(lunlex.RParen, "')'")
		if perr != nil {
			return nil, perr
		}
		end = closeTok.PosEnd
	}

	return &lunast.InstanceNewNode{
		Base: lunast.NewBase(start.PosStart, end),
		ClassName: name, Args: args,
	}, nil
}
