package function

import (
	"sort"

	"remap/expr"
	"remap/types"
)

// ArgumentList maps parameter keywords to the compiled expressions bound to
// them at one call site
type ArgumentList struct {
	function string
	args     map[string]expr.Expression
	order    []string
}

// NewArgumentList creates an empty list
func NewArgumentList() *ArgumentList {
	return &ArgumentList{args: make(map[string]expr.Expression)}
}

// Insert binds e to keyword, replacing any previous binding
func (a *ArgumentList) Insert(keyword string, e expr.Expression) {
	if _, ok := a.args[keyword]; !ok {
		a.order = append(a.order, keyword)
	}
	a.args[keyword] = e
}

// Required returns the argument for keyword, or a MissingArgument error
func (a *ArgumentList) Required(keyword string) (expr.Expression, error) {
	e, ok := a.args[keyword]
	if !ok {
		return nil, expr.NewMissingArgument(a.function, keyword)
	}
	return e, nil
}

// Optional returns the argument for keyword, or nil
func (a *ArgumentList) Optional(keyword string) expr.Expression {
	return a.args[keyword]
}

// RequiredLiteral returns the constant bound to keyword. The argument must
// be present and known at compile time.
func (a *ArgumentList) RequiredLiteral(keyword string) (types.Value, error) {
	e, err := a.Required(keyword)
	if err != nil {
		return nil, err
	}
	v, ok := expr.AsLiteral(e)
	if !ok {
		return nil, expr.Errorf(expr.InvalidArgument, a.function, "argument %q must be a literal", keyword)
	}
	return v, nil
}

// OptionalLiteral returns the constant bound to keyword, or nil when absent
func (a *ArgumentList) OptionalLiteral(keyword string) (types.Value, error) {
	e := a.Optional(keyword)
	if e == nil {
		return nil, nil
	}
	v, ok := expr.AsLiteral(e)
	if !ok {
		return nil, expr.Errorf(expr.InvalidArgument, a.function, "argument %q must be a literal", keyword)
	}
	return v, nil
}

// Keywords returns bound keywords in insertion order
func (a *ArgumentList) Keywords() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len returns the number of bound arguments
func (a *ArgumentList) Len() int {
	return len(a.args)
}

// Bind resolves positional then keyword arguments to fn's parameters in
// declaration order
func Bind(fn Function, positional []expr.Expression, keyword map[string]expr.Expression) (*ArgumentList, error) {
	name := fn.Identifier()
	params := fn.Parameters()
	args := NewArgumentList()
	args.function = name

	if len(positional) > len(params) {
		return nil, expr.Errorf(expr.TooManyArguments, name,
			"expected at most %d arguments, got %d", len(params), len(positional)+len(keyword))
	}
	for i, e := range positional {
		args.Insert(params[i].Keyword, e)
	}

	keys := make([]string, 0, len(keyword))
	for k := range keyword {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !hasParameter(params, k) {
			return nil, expr.Errorf(expr.UnknownKeyword, name, "unknown keyword argument %q", k)
		}
		if _, ok := args.args[k]; ok {
			return nil, expr.Errorf(expr.DuplicateArgument, name, "argument %q given more than once", k)
		}
		args.Insert(k, keyword[k])
	}
	return args, nil
}

func hasParameter(params []Parameter, keyword string) bool {
	for _, p := range params {
		if p.Keyword == keyword {
			return true
		}
	}
	return false
}
