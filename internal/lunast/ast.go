// Package lunast defines the abstract syntax tree produced by lunparse and
// consumed by the evaluator in package lunfardo.
package lunast

import "github.com/lunfardo-lang/lunfardo/internal/lunlex"

// Node is implemented by every AST node. Position range is derived from
// children at construction time, mirroring the original node classes'
// pos_start/pos_end derivation.
type Node interface {
	Start() lunlex.Position
	End() lunlex.Position
	node()
}

// Base carries the position span shared by every node and is embedded by
// all concrete node types.
type Base struct {
	PosStart lunlex.Position
	PosEnd   lunlex.Position
}

func (b Base) Start() lunlex.Position { return b.PosStart }
func (b Base) End() lunlex.Position   { return b.PosEnd }
func (Base) node()                    {}

func NewBase(start, end lunlex.Position) Base {
	return Base{PosStart: start, PosEnd: end}
}

// --- Literals ---

type NumberNode struct {
	Base
	Tok lunlex.Token
}

type StringNode struct {
	Base
	Tok lunlex.Token
}

// --- Containers ---

type ListNode struct {
	Base
	Elements []Node
}

type DictPair struct {
	Key   Node
	Value Node
}

type DictNode struct {
	Base
	Pairs []DictPair
}

// --- Variables ---

type VarAccessNode struct {
	Base
	Name lunlex.Token
}

// VarAssignNode is `poneleque <name> = <value>`, a fresh declaration in the
// current scope.
type VarAssignNode struct {
	Base
	Name  lunlex.Token
	Value Node
}

// ReassignNode rebinds an already-declared name, walking the scope chain to
// find where it lives rather than shadowing in the current scope.
type ReassignNode struct {
	Base
	Name  lunlex.Token
	Value Node
}

// --- Operators ---

type BinOpNode struct {
	Base
	Left  Node
	Op    lunlex.Token
	Right Node
}

type UnaryOpNode struct {
	Base
	Op   lunlex.Token
	Node Node
}

// --- Control flow ---

type IfCase struct {
	Condition Node
	Body      Node
	IsBlock   bool
}

type ElseCase struct {
	Body    Node
	IsBlock bool
}

type IfNode struct {
	Base
	Cases []IfCase
	Else  *ElseCase
}

type ForNode struct {
	Base
	VarName        lunlex.Token
	StartValue     Node
	EndValue       Node
	StepValue      Node // nil means default step of 1
	Body           Node
	ShouldReturnNil bool
}

type WhileNode struct {
	Base
	Condition       Node
	Body            Node
	ShouldReturnNil bool
}

// --- Callables ---

// Param is one function parameter; Default is nil for required parameters.
type Param struct {
	Name    lunlex.Token
	Default Node
}

type FuncDefNode struct {
	Base
	Name           *lunlex.Token // nil for anonymous function expressions
	Params         []Param
	Body           Node
	ShouldAutoReturn bool
	IsMethod       bool
}

type CallNode struct {
	Base
	Callee Node
	Args   []Node
}

// --- Classes ---

type ClassDefNode struct {
	Base
	Name          lunlex.Token
	Methods       []*FuncDefNode
	Constructor   *FuncDefNode // arranque, may be nil
	ParentName    *lunlex.Token
}

type InstanceNewNode struct {
	Base
	ClassName lunlex.Token
	Args      []Node
}

// MethodCallNode is `receiver.chain.method(args)`.
type MethodCallNode struct {
	Base
	Receiver    lunlex.Token
	AccessChain []lunlex.Token
	Method      lunlex.Token
	Args        []Node
}

// InstanceVarAccessNode is `receiver.chain.name` read as a value.
type InstanceVarAccessNode struct {
	Base
	Receiver    lunlex.Token
	AccessChain []lunlex.Token
}

// InstanceVarAssignNode is `receiver.name = value` directly on the receiver
// (no intermediate chain).
type InstanceVarAssignNode struct {
	Base
	Receiver lunlex.Token
	Name     lunlex.Token
	Value    Node
}

// InstanceVarAccessAndAssignNode is `receiver.chain.name = value` where
// chain is non-empty.
type InstanceVarAccessAndAssignNode struct {
	Base
	Receiver    lunlex.Token
	AccessChain []lunlex.Token
	Value       Node
}

// --- Block delimiters ---

type ReturnNode struct {
	Base
	Value Node // nil for a bare "devolver"
}

type ContinueNode struct {
	Base
}

type BreakNode struct {
	Base
}

// --- Module ---

type ImportNode struct {
	Base
	ModuleName lunlex.Token
}

// --- Exceptions ---

type TryNode struct {
	Base
	TryBody    Node
	ErrorTag   *lunlex.Token // nil catches any tag
	ExceptBody Node
}

type RaiseNode struct {
	Base
	ErrorTag lunlex.Token
	Message  Node
}

// --- Program root ---

// StatementsNode sequences a block of statements and is the root node
// produced by the parser, and the body of every block-form construct.
type StatementsNode struct {
	Base
	Statements []Node
}
