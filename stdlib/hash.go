package stdlib

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"remap/expr"
	"remap/function"
	"remap/types"
)

var sha2Variants = map[string]func() hash.Hash{
	"SHA-224":     sha256.New224,
	"SHA-256":     sha256.New,
	"SHA-384":     sha512.New384,
	"SHA-512":     sha512.New,
	"SHA-512/224": sha512.New512_224,
	"SHA-512/256": sha512.New512_256,
}

var sha3Variants = map[string]func() hash.Hash{
	"SHA3-224": sha3.New224,
	"SHA3-256": sha3.New256,
	"SHA3-384": sha3.New384,
	"SHA3-512": sha3.New512,
}

func variantNames(variants map[string]func() hash.Hash) string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// digest builds a hex-encoding hash function whose variant is fixed at
// compile time
func digest(name string, variants map[string]func() hash.Hash, fallback string, examples []function.Example) *function.Builtin {
	params := []function.Parameter{
		required("value", types.KindBytes),
		optional("variant", types.KindBytes),
	}
	return &function.Builtin{
		Name:   name,
		Params: params,
		Docs:   examples,
		CompileFunc: func(state *expr.State, ctx *function.CompileContext, args *function.ArgumentList) (expr.Expression, error) {
			variant, err := literalString(name, args, "variant", fallback)
			if err != nil {
				return nil, err
			}
			newHash, ok := variants[variant]
			if !ok {
				return nil, expr.Errorf(expr.InvalidArgument, name,
					"unknown variant %q, expected one of %s", variant, variantNames(variants))
			}

			apply := func(_ *expr.Context, vals []types.Value) (types.Value, error) {
				data, err := types.TryBytes(vals[0])
				if err != nil {
					return nil, err
				}
				h := newHash()
				h.Write(data)
				return types.NewString(hex.EncodeToString(h.Sum(nil))), nil
			}
			return newCall(params, args, apply, returns(types.KindBytes))
		},
	}
}

var sha2Digest = digest("sha2", sha2Variants, "SHA-512/256", []function.Example{
	{
		Title:  "default variant",
		Source: `sha2("foo")`,
		Result: `"d58042e6aa5a335e03ad576c6a9e43b41591bfd2077f72dec9df7930e492055d"`,
	},
	{
		Title:  "SHA-256",
		Source: `sha2("foo", variant: "SHA-256")`,
		Result: `"2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae"`,
	},
	{
		Title:  "unknown variant",
		Source: `sha2("foo", variant: "SHA-1")`,
		Error:  "unknown variant",
	},
})

var sha3Digest = digest("sha3", sha3Variants, "SHA3-512", []function.Example{
	{
		Title:  "SHA3-256",
		Source: `sha3("foo", variant: "SHA3-256")`,
		Result: `"76d3bc41c9f588f7fcd0d5bf4718f8f84b1c41b20882703100b9eb9413807c01"`,
	},
})

var uuidV4 = simple("uuid_v4",
	nil,
	[]function.Example{
		{Title: "random id", Source: `length(uuid_v4())`, Result: `36`},
	},
	func(*expr.Context, []types.Value) (types.Value, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, err
		}
		return types.NewString(id.String()), nil
	},
	returns(types.KindBytes),
)
