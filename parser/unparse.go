package parser

import (
	"strconv"
	"strings"
)

// UnparseProgram converts a program back to source, one expression per line
func UnparseProgram(prog *Program) []string {
	if prog == nil || len(prog.Exprs) == 0 {
		return []string{}
	}

	lines := make([]string, 0, len(prog.Exprs))
	for _, e := range prog.Exprs {
		lines = append(lines, Unparse(e))
	}
	return lines
}

// Unparse converts an expression back to canonical source
func Unparse(e Expr) string {
	switch n := e.(type) {
	case *LiteralExpr:
		return n.Value.String()

	case *IdentifierExpr:
		return n.Name

	case *PathExpr:
		return unparsePath(n.Segments)

	case *ArrayExpr:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = Unparse(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case *ObjectExpr:
		if len(n.Keys) == 0 {
			return "{}"
		}
		parts := make([]string, len(n.Keys))
		for i, k := range n.Keys {
			parts[i] = strconv.Quote(k) + ": " + Unparse(n.Values[i])
		}
		return "{ " + strings.Join(parts, ", ") + " }"

	case *CallExpr:
		parts := make([]string, len(n.Args))
		for i, arg := range n.Args {
			if arg.Keyword != "" {
				parts[i] = arg.Keyword + ": " + Unparse(arg.Value)
			} else {
				parts[i] = Unparse(arg.Value)
			}
		}
		return n.Name + "(" + strings.Join(parts, ", ") + ")"

	case *ParenExpr:
		return "(" + Unparse(n.Expr) + ")"

	case *AssignExpr:
		return Unparse(n.Target) + " = " + Unparse(n.Value)

	default:
		return "<unknown>"
	}
}

func unparsePath(segments []PathSegment) string {
	if len(segments) == 0 {
		return "."
	}
	var sb strings.Builder
	for _, seg := range segments {
		if seg.IsIndex {
			sb.WriteString("[" + strconv.Itoa(seg.Index) + "]")
			continue
		}
		sb.WriteByte('.')
		if isIdentifier(seg.Field) {
			sb.WriteString(seg.Field)
		} else {
			sb.WriteString(strconv.Quote(seg.Field))
		}
	}
	return sb.String()
}

func isIdentifier(s string) bool {
	if s == "" || LookupIdent(s) != TOKEN_IDENTIFIER {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) && !(i > 0 && isDigit(s[i])) {
			return false
		}
	}
	return true
}
