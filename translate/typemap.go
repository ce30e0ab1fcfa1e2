package translate

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/pig"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// MapType converts a script-side column type to its target-algebra
// equivalent. The mapping is total and never fails: Unknown, the
// script's untyped default, becomes raw bytes and stays undecoded until
// something casts it.
func MapType(t pig.Type) common.Type {
	switch t {
	case pig.Int:
		return common.IntType
	case pig.Long:
		return common.LongType
	case pig.Float:
		return common.FloatType
	case pig.Double:
		return common.DoubleType
	case pig.CharArray:
		return common.StringType
	case pig.Boolean:
		return common.BoolType
	}
	// Unknown, ByteArray, and anything a newer front end invents.
	return common.BytesType
}

func mapJoinType(t pig.JoinType) (planner.JoinType, error) {
	switch t {
	case pig.InnerJoin:
		return planner.Inner, nil
	case pig.LeftOuterJoin:
		return planner.LeftOuter, nil
	case pig.RightOuterJoin:
		return planner.RightOuter, nil
	case pig.FullOuterJoin:
		return planner.FullOuter, nil
	}
	return 0, common.NewPlanError(common.UnsupportedOperatorError, "no equi-join equivalent for %s join", t)
}

func mapCompareOp(op pig.CompareOp) (planner.ComparisonType, error) {
	switch op {
	case pig.Eq:
		return planner.Equal, nil
	case pig.Neq:
		return planner.NotEqual, nil
	case pig.Lt:
		return planner.LessThan, nil
	case pig.Lte:
		return planner.LessThanOrEqual, nil
	case pig.Gt:
		return planner.GreaterThan, nil
	case pig.Gte:
		return planner.GreaterThanOrEqual, nil
	}
	return 0, common.NewPlanError(common.UnsupportedOperatorError, "no equivalent for comparison operator %s", op)
}

func mapAggFunc(f pig.AggFunc) (planner.AggregatorType, error) {
	switch f {
	case pig.AggCount:
		return planner.AggCount, nil
	case pig.AggSum:
		return planner.AggSum, nil
	case pig.AggMin:
		return planner.AggMin, nil
	case pig.AggMax:
		return planner.AggMax, nil
	}
	return 0, common.NewPlanError(common.UnsupportedOperatorError, "no equivalent for aggregate %s", f)
}
