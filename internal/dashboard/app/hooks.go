package app

import (
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// secondsToDurationHook accepts bare integers as seconds, so
// FIREME_REFRESH_TIMEOUT=20 means 20s rather than 20ns.
func secondsToDurationHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return time.Duration(n) * time.Second, nil
			}
		case int:
			return time.Duration(v) * time.Second, nil
		}
		return data, nil
	}
}
