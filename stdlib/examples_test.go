package stdlib_test

import (
	"strings"
	"testing"

	"remap/compiler"
	"remap/expr"
	"remap/stdlib"
	"remap/types"
)

// TestExamples runs every documented example through the compiler. An
// example either yields Result, rendered as a literal, or fails with an
// error containing Error at compile time or at run time.
func TestExamples(t *testing.T) {
	registry := stdlib.NewRegistry()

	for _, fn := range stdlib.All() {
		for _, ex := range fn.Examples() {
			t.Run(fn.Identifier()+"/"+ex.Title, func(t *testing.T) {
				prog, err := compiler.Compile(ex.Source, registry, nil)
				if err != nil {
					if ex.Error == "" || !strings.Contains(err.Error(), ex.Error) {
						t.Fatalf("Compile(%s) error = %v, want result %s", ex.Source, err, ex.Result)
					}
					return
				}

				got, err := prog.Resolve(expr.NewContext(nil))
				if ex.Error != "" {
					if err == nil || !strings.Contains(err.Error(), ex.Error) {
						t.Fatalf("Resolve(%s) = %v, %v, want error containing %q", ex.Source, got, err, ex.Error)
					}
					if !prog.TypeDef().Fallible {
						t.Errorf("TypeDef() = %s, want fallible", prog.TypeDef())
					}
					return
				}
				if err != nil {
					t.Fatalf("Resolve(%s) error = %v", ex.Source, err)
				}
				if got.String() != ex.Result {
					t.Errorf("Resolve(%s) = %s, want %s", ex.Source, got, ex.Result)
				}
				if k := types.KindOf(got); !prog.TypeDef().Kind.Contains(k) {
					t.Errorf("TypeDef() = %s does not admit %s", prog.TypeDef(), k)
				}
			})
		}
	}
}

func TestEveryFunctionHasExamples(t *testing.T) {
	for _, fn := range stdlib.All() {
		if len(fn.Examples()) == 0 {
			t.Errorf("%s has no examples", fn.Identifier())
		}
	}
}

func TestRegistryNames(t *testing.T) {
	registry := stdlib.NewRegistry()
	if registry.Len() != len(stdlib.All()) {
		t.Errorf("Len() = %d, want %d", registry.Len(), len(stdlib.All()))
	}
	for _, name := range []string{"append", "push", "sha3", "encode_zstd", "parse_timestamp"} {
		if !registry.Has(name) {
			t.Errorf("registry lacks %s", name)
		}
	}
}
