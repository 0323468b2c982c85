// Package formula - Whitelisted formula functions
package formula

import (
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// roundFunc rounds to the nearest integer, halves away from zero.
// go-cty's stdlib has ceiling/floor but no plain round.
var roundFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "num", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		f, _ := args[0].AsBigFloat().Float64()
		return cty.NumberFloatVal(math.Round(f)), nil
	},
})

// evalFunctions is the closed function whitelist available to formulas.
// Nothing else resolves: not a sandbox policy layered on top, but the
// entire function table the evaluator knows about.
var evalFunctions = map[string]function.Function{
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
	"round": roundFunc,
	"min":   stdlib.MinFunc,
	"max":   stdlib.MaxFunc,
	"abs":   stdlib.AbsoluteFunc,
}
