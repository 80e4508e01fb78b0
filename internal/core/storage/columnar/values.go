package columnar

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

var errNullValue = errors.New("unexpected null value")

func unsupported(arr arrow.Array) error {
	return fmt.Errorf("unsupported arrow type %s", arr.DataType())
}

// stringAt reads text columns. Integer identifiers are rendered in base 10
// and nulls read as the empty string.
func stringAt(arr arrow.Array, i int) (string, error) {
	if arr.IsNull(i) {
		return "", nil
	}

	switch a := arr.(type) {
	case *array.String:
		return a.Value(i), nil
	case *array.LargeString:
		return a.Value(i), nil
	case *array.Binary:
		return string(a.Value(i)), nil
	case *array.Dictionary:
		return stringAt(a.Dictionary(), a.GetValueIndex(i))
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10), nil
	case *array.Int32:
		return strconv.FormatInt(int64(a.Value(i)), 10), nil
	default:
		return "", unsupported(arr)
	}
}

func intAt(arr arrow.Array, i int) (int64, error) {
	if arr.IsNull(i) {
		return 0, errNullValue
	}

	switch a := arr.(type) {
	case *array.Int64:
		return a.Value(i), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Uint32:
		return int64(a.Value(i)), nil
	case *array.Uint16:
		return int64(a.Value(i)), nil
	case *array.Float64:
		v := a.Value(i)
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("non-integral value %v", v)
		}
		return int64(v), nil
	case *array.String:
		return strconv.ParseInt(a.Value(i), 10, 64)
	default:
		return 0, unsupported(arr)
	}
}

func decimalAt(arr arrow.Array, i int) (decimal.Decimal, error) {
	if arr.IsNull(i) {
		return decimal.Zero, errNullValue
	}

	switch a := arr.(type) {
	case *array.Float64:
		return decimal.NewFromFloat(a.Value(i)), nil
	case *array.Float32:
		return decimal.NewFromFloat32(a.Value(i)), nil
	case *array.Int64:
		return decimal.NewFromInt(a.Value(i)), nil
	case *array.Int32:
		return decimal.NewFromInt32(a.Value(i)), nil
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return decimal.NewFromBigInt(a.Value(i).BigInt(), -scale), nil
	case *array.String:
		return decimal.NewFromString(a.Value(i))
	default:
		return decimal.Zero, unsupported(arr)
	}
}

func dateAt(arr arrow.Array, i int) (v1.Date, error) {
	if arr.IsNull(i) {
		return v1.Date{}, errNullValue
	}

	switch a := arr.(type) {
	case *array.Date32:
		return v1.DateOf(a.Value(i).ToTime()), nil
	case *array.Date64:
		return v1.DateOf(a.Value(i).ToTime()), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return v1.DateOf(a.Value(i).ToTime(unit)), nil
	case *array.String:
		return v1.ParseDate(a.Value(i))
	default:
		return v1.Date{}, unsupported(arr)
	}
}
