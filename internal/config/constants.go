package config

// IsTestMode indicates if the program is running in test mode.
// This is set once at startup in main.go from FUNSEL_TEST_MODE; the CLI
// drops per-run identifiers (trace ids) so output is stable across runs.
var IsTestMode = false

// DefaultMaxDepth bounds numeric and list recursion. Exceeding it is a
// fatal, diagnosable overflow, never a silent fallback.
const DefaultMaxDepth = 512

// ConfigFileName is the project configuration file looked up by the CLI.
const ConfigFileName = "funsel.yaml"

// Built-in operation names
const (
	ClassifyOpName      = "classify"
	ProcessNumberOpName = "process_number"
	SerializeOpName     = "serialize"
	AddElementOpName    = "add_element"
	SafeDivideOpName    = "safe_divide"
	ToggleOpName        = "toggle"
)

// Built-in evaluator function names
const (
	FactorialFuncName = "factorial"
	FibonacciFuncName = "fibonacci"
	PowerFuncName     = "power"
	GCDFuncName       = "gcd"
	FrontFuncName     = "front"
	TailFuncName      = "tail"
	AppendFuncName    = "append"
	SizeFuncName      = "size"
)

// Built-in type names of the demo universe
const (
	IntTypeName            = "int"
	DoubleTypeName         = "double"
	StringTypeName         = "string"
	BoolTypeName           = "bool"
	VectorTypeName         = "Vector"
	ArrayTypeName          = "Array"
	CustomStructName       = "CustomStruct"
	NonPrintableStructName = "NonPrintableStruct"
)

// Capability and probe names
const (
	PushBackMethodName  = "push_back"
	SerializeMethodName = "serialize"
	PrintOperatorName   = "print"
	ValueTypeAliasName  = "value_type"
)
