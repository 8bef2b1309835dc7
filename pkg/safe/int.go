package safe

import (
	"fmt"
	"math"
)

// Int64 converts v to int64. Unsigned values above math.MaxInt64 are rejected.
func Int64[T Integer](v T) (int64, error) {
	if v > 0 && uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// Int32 converts v to int32 with range validation.
func Int32[T Integer](v T) (int32, error) {
	if v < 0 && int64(v) < math.MinInt32 {
		return 0, fmt.Errorf("value %d out of int32 range", v)
	}
	if v > 0 && uint64(v) > math.MaxInt32 {
		return 0, fmt.Errorf("value %d out of int32 range", v)
	}
	return int32(v), nil
}
