package cache

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR modes shared by every cache payload. Encoding is canonical so equal
// result sets produce equal bytes; decoding is bounded against oversized input.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	mapStringAny = reflect.TypeOf(map[string]any(nil))
)

//nolint:gochecknoinits // CBOR modes must exist before first use
func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:    cbor.SortCanonical,
		Time:    cbor.TimeRFC3339Nano,
		TimeTag: cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoding mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1_000_000,
		MaxMapPairs:      10_000,
		MaxNestedLevels:  16,
		// query rows are map[string]any of signed integers, strings, floats and
		// tagged times, which decode back to time.Time
		DefaultMapType: mapStringAny,
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoding mode: %v", err))
	}
}

// Marshal serializes v to CBOR.
//
//	data, err := cache.Marshal(result)
//	err = c.Set(ctx, key, data, 5*time.Minute)
func Marshal[T any](v T) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal failed: %w", err)
	}
	return data, nil
}

// Unmarshal deserializes CBOR data into a value of type T.
func Unmarshal[T any](data []byte) (T, error) {
	var v T
	if err := decMode.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("cbor unmarshal failed: %w", err)
	}
	return v, nil
}
