package argument

import (
	"fmt"
	"strconv"
	"strings"
)

var builtinConverters = map[Kind]Converter{
	String: convertString,
	Bool:   convertBool,
	Int:    convertInt,
	Float:  convertFloat,
}

func convertString(raw string) (any, error) {
	return raw, nil
}

var (
	boolTrue  = []string{"y", "yes", "true", "t", "1"}
	boolFalse = []string{"n", "no", "false", "f", "0"}
)

func convertBool(raw string) (any, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range boolTrue {
		if v == s {
			return true, nil
		}
	}
	for _, s := range boolFalse {
		if v == s {
			return false, nil
		}
	}
	return nil, fmt.Errorf("%q is not a boolean", raw)
}

func convertInt(raw string) (any, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", raw)
	}
	return v, nil
}

// convertFloat accepts an optional trailing '%', meaning the value is
// divided by 100 ("50%" -> 0.5).
func convertFloat(raw string) (any, error) {
	v := strings.TrimSpace(raw)
	percent := strings.HasSuffix(v, "%")
	if percent {
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", raw)
	}
	if percent {
		f /= 100
	}
	return f, nil
}
