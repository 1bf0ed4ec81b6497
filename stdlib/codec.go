package stdlib

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"remap/expr"
	"remap/function"
	"remap/types"
)

var encodeBase64 = simple("encode_base64",
	[]function.Parameter{
		required("value", types.KindBytes),
		optional("padding", types.KindBoolean),
	},
	[]function.Example{
		{Title: "padded", Source: `encode_base64("please encode me")`, Result: `"cGxlYXNlIGVuY29kZSBtZQ=="`},
		{Title: "unpadded", Source: `encode_base64("please encode me", padding: false)`, Result: `"cGxlYXNlIGVuY29kZSBtZQ"`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		data, err := types.TryBytes(args[0])
		if err != nil {
			return nil, err
		}
		enc := base64.StdEncoding
		if args[1] != nil {
			padding, err := types.TryBoolean(args[1])
			if err != nil {
				return nil, err
			}
			if !padding {
				enc = base64.RawStdEncoding
			}
		}
		return types.NewString(enc.EncodeToString(data)), nil
	},
	returns(types.KindBytes),
)

var decodeBase64 = simple("decode_base64",
	[]function.Parameter{
		required("value", types.KindBytes),
	},
	[]function.Example{
		{Title: "padded", Source: `decode_base64("c29tZSBzdHJpbmc=")`, Result: `"some string"`},
		{Title: "unpadded", Source: `decode_base64("c29tZSBzdHJpbmc")`, Result: `"some string"`},
		{Title: "invalid", Source: `decode_base64("!!")`, Error: "unable to decode value from base64"},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		data, err := types.TryBytes(args[0])
		if err != nil {
			return nil, err
		}
		enc := base64.StdEncoding
		if len(data)%4 != 0 {
			enc = base64.RawStdEncoding
		}
		out, err := enc.DecodeString(string(data))
		if err != nil {
			return nil, fmt.Errorf("unable to decode value from base64: %w", err)
		}
		return types.NewBytes(out), nil
	},
	fallibly(types.KindBytes),
)

// MaxDecodedSize bounds the output of decode_zstd
const MaxDecodedSize = 16 << 20

// the zstd decoder is safe for concurrent DecodeAll calls
var zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(MaxDecodedSize),
	)
})

var encodeZstdParams = []function.Parameter{
	required("value", types.KindBytes),
	optional("compression_level", types.KindInteger),
}

var encodeZstd = &function.Builtin{
	Name:   "encode_zstd",
	Params: encodeZstdParams,
	Docs: []function.Example{
		{Title: "round trip", Source: `decode_zstd(encode_zstd("please encode me"))`, Result: `"please encode me"`},
		{Title: "with level", Source: `length(decode_zstd(encode_zstd("abc", compression_level: 19)))`, Result: `3`},
	},
	CompileFunc: func(state *expr.State, ctx *function.CompileContext, args *function.ArgumentList) (expr.Expression, error) {
		level := zstd.SpeedDefault
		v, err := args.OptionalLiteral("compression_level")
		if err != nil {
			return nil, err
		}
		if v != nil {
			n, err := types.TryInteger(v)
			if err != nil {
				return nil, expr.NewTypeMismatch("encode_zstd", "compression_level", types.KindInteger, types.KindOf(v))
			}
			if n < 1 || n > 22 {
				return nil, expr.Errorf(expr.InvalidArgument, "encode_zstd", "compression level %d out of range 1..22", n)
			}
			level = zstd.EncoderLevelFromZstd(int(n))
		}

		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
		if err != nil {
			return nil, expr.Errorf(expr.InvalidArgument, "encode_zstd", "%v", err)
		}

		apply := func(_ *expr.Context, vals []types.Value) (types.Value, error) {
			data, err := types.TryBytes(vals[0])
			if err != nil {
				return nil, err
			}
			return types.NewBytes(encoder.EncodeAll(data, nil)), nil
		}
		return newCall(encodeZstdParams, args, apply, returns(types.KindBytes))
	},
}

var decodeZstd = simple("decode_zstd",
	[]function.Parameter{
		required("value", types.KindBytes),
	},
	[]function.Example{
		{Title: "invalid", Source: `decode_zstd("not zstd")`, Error: "unable to decode value with zstd"},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		data, err := types.TryBytes(args[0])
		if err != nil {
			return nil, err
		}
		decoder, err := zstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("unable to create zstd decoder: %w", err)
		}
		out, err := decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("unable to decode value with zstd: %w", err)
		}
		return types.NewBytes(out), nil
	},
	fallibly(types.KindBytes),
)
