package stdlib

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/araddon/dateparse"
	"github.com/ncruces/go-strftime"

	"remap/expr"
	"remap/function"
	"remap/types"
)

var parseTimestampParams = []function.Parameter{
	required("value", types.KindBytes),
	optional("format", types.KindBytes),
}

var parseTimestamp = &function.Builtin{
	Name:   "parse_timestamp",
	Params: parseTimestampParams,
	Docs: []function.Example{
		{
			Title:  "strftime format",
			Source: `parse_timestamp("10-Oct-2020 16:00", format: "%d-%b-%Y %H:%M")`,
			Result: `t'2020-10-10T16:00:00Z'`,
		},
		{
			Title:  "free form",
			Source: `parse_timestamp("2021-03-04T05:06:07+01:00")`,
			Result: `t'2021-03-04T04:06:07Z'`,
		},
		{
			Title:  "unparseable",
			Source: `parse_timestamp("yesterday-ish")`,
			Error:  "unable to parse timestamp",
		},
	},
	CompileFunc: func(state *expr.State, ctx *function.CompileContext, args *function.ArgumentList) (expr.Expression, error) {
		format, err := literalString("parse_timestamp", args, "format", "")
		if err != nil {
			return nil, err
		}
		if format != "" {
			if _, err := strftime.Layout(format); err != nil {
				return nil, expr.Errorf(expr.InvalidArgument, "parse_timestamp", "invalid format %q: %v", format, err)
			}
		}

		apply := func(ctx *expr.Context, vals []types.Value) (types.Value, error) {
			s, err := types.TryString(vals[0])
			if err != nil {
				return nil, err
			}
			t, err := parseTime(s, format, ctx.Location())
			if err != nil {
				return nil, fmt.Errorf("unable to parse timestamp %q: %w", s, err)
			}
			return types.NewTimestamp(t), nil
		}
		return newCall(parseTimestampParams, args, apply, fallibly(types.KindTimestamp))
	},
}

// parseTime reads s with a strftime format, or with free-form detection
// when format is empty. Values without a zone are taken to be in loc.
func parseTime(s, format string, loc *time.Location) (time.Time, error) {
	if format == "" {
		return dateparse.ParseIn(s, loc, dateparse.PreferMonthFirst(true))
	}

	t, err := strftime.Parse(format, s)
	if err != nil {
		return time.Time{}, err
	}
	if strings.Contains(format, "%z") || strings.Contains(format, "%Z") {
		return t, nil
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
}

var formatTimestampParams = []function.Parameter{
	required("value", types.KindTimestamp),
	required("format", types.KindBytes),
	optional("timezone", types.KindBytes),
}

var formatTimestamp = &function.Builtin{
	Name:   "format_timestamp",
	Params: formatTimestampParams,
	Docs: []function.Example{
		{
			Title:  "date",
			Source: `format_timestamp(t'2020-10-21T16:00:00Z', format: "%Y-%m-%d")`,
			Result: `"2020-10-21"`,
		},
		{
			Title:  "in timezone",
			Source: `format_timestamp(t'2020-10-21T16:00:00Z', format: "%H:%M", timezone: "Asia/Tokyo")`,
			Result: `"01:00"`,
		},
	},
	CompileFunc: func(state *expr.State, ctx *function.CompileContext, args *function.ArgumentList) (expr.Expression, error) {
		fv, err := args.RequiredLiteral("format")
		if err != nil {
			return nil, err
		}
		format, err := types.TryString(fv)
		if err != nil {
			return nil, expr.NewTypeMismatch("format_timestamp", "format", types.KindBytes, types.KindOf(fv))
		}

		tz, err := literalString("format_timestamp", args, "timezone", "")
		if err != nil {
			return nil, err
		}
		var loc *time.Location
		if tz != "" {
			if loc, err = time.LoadLocation(tz); err != nil {
				return nil, expr.Errorf(expr.InvalidArgument, "format_timestamp", "unknown timezone %q", tz)
			}
		}

		apply := func(ctx *expr.Context, vals []types.Value) (types.Value, error) {
			t, err := types.TryTimestamp(vals[0])
			if err != nil {
				return nil, err
			}
			in := loc
			if in == nil {
				in = ctx.Location()
			}
			return types.NewString(strftime.Format(format, t.In(in))), nil
		}
		return newCall(formatTimestampParams, args, apply, returns(types.KindBytes))
	},
}
