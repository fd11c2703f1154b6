package sales

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/gaborage/salesquery/query"
)

// timeLayouts are tried in order when a text column decodes into a time field.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000",
	time.DateTime,
	time.DateOnly,
}

// Decode converts row into a T using the db struct tags. Numeric text such as
// MySQL DECIMAL values is converted to the field's type, NULL leaves the
// field at its zero value and unknown columns are ignored.
func Decode[T any](row query.Row) (T, error) {
	var out T
	if err := decodeInto(row, &out); err != nil {
		return out, err
	}
	return out, nil
}

// DecodeAll decodes every row of res.
func DecodeAll[T any](res *query.Result) ([]T, error) {
	out := make([]T, 0, res.Len())
	if res == nil {
		return out, nil
	}
	for i, row := range res.Rows {
		v, err := Decode[T](row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeInto(row query.Row, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		DecodeHook:       stringToTimeHook,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(row)); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}

func stringToTimeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("cannot parse %q as a date", s)
}
