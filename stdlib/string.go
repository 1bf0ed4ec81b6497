package stdlib

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"remap/expr"
	"remap/function"
	"remap/types"
)

// Casers carry state, so each call gets its own.
func caseMapping(name string, newCaser func() cases.Caser, examples []function.Example) *function.Builtin {
	return simple(name,
		[]function.Parameter{
			required("value", types.KindBytes),
		},
		examples,
		func(_ *expr.Context, args []types.Value) (types.Value, error) {
			s, err := types.TryString(args[0])
			if err != nil {
				return nil, err
			}
			return types.NewString(newCaser().String(s)), nil
		},
		returns(types.KindBytes),
	)
}

var upcase = caseMapping("upcase",
	func() cases.Caser { return cases.Upper(language.Und) },
	[]function.Example{
		{Title: "ascii", Source: `upcase("Hello")`, Result: `"HELLO"`},
		{Title: "unicode", Source: `upcase("café")`, Result: `"CAFÉ"`},
	},
)

var downcase = caseMapping("downcase",
	func() cases.Caser { return cases.Lower(language.Und) },
	[]function.Example{
		{Title: "ascii", Source: `downcase("HeLLo")`, Result: `"hello"`},
		{Title: "unicode", Source: `downcase("ÀÉÎ")`, Result: `"àéî"`},
	},
)

var contains = simple("contains",
	[]function.Parameter{
		required("value", types.KindBytes),
		required("substring", types.KindBytes),
		optional("case_sensitive", types.KindBoolean),
	},
	[]function.Example{
		{Title: "case sensitive", Source: `contains("The Needle", "needle")`, Result: `false`},
		{Title: "case insensitive", Source: `contains("The Needle", "needle", case_sensitive: false)`, Result: `true`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		s, err := types.TryString(args[0])
		if err != nil {
			return nil, err
		}
		sub, err := types.TryString(args[1])
		if err != nil {
			return nil, err
		}
		caseSensitive := true
		if args[2] != nil {
			if caseSensitive, err = types.TryBoolean(args[2]); err != nil {
				return nil, err
			}
		}
		if !caseSensitive {
			fold := cases.Fold()
			s, sub = fold.String(s), fold.String(sub)
		}
		return types.NewBool(strings.Contains(s, sub)), nil
	},
	returns(types.KindBoolean),
)

var match = simple("match",
	[]function.Parameter{
		required("value", types.KindBytes),
		required("pattern", types.KindRegex),
	},
	[]function.Example{
		{Title: "matches", Source: `match("abc123", r'^[a-z]+\d+$')`, Result: `true`},
		{Title: "no match", Source: `match("abc", r'\d')`, Result: `false`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		s, err := types.TryString(args[0])
		if err != nil {
			return nil, err
		}
		re, err := types.TryRegex(args[1])
		if err != nil {
			return nil, err
		}
		return types.NewBool(re.MatchString(s)), nil
	},
	returns(types.KindBoolean),
)
