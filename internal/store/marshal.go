package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/roach88/wobos/internal/ir"
)

// marshalExchange converts an exchange map to canonical JSON TEXT.
// Values are written as shortest round-trip decimal strings because
// canonical JSON has no float form.
func marshalExchange(m map[string]float64) (string, error) {
	obj := make(map[string]string, len(m))
	for k, v := range m {
		obj[k] = ir.FormatWire(v)
	}
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("marshal exchange: %w", err)
	}
	return string(data), nil
}

// unmarshalExchange parses canonical JSON TEXT back to an exchange map.
func unmarshalExchange(data string) (map[string]float64, error) {
	var obj map[string]string
	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		return nil, fmt.Errorf("unmarshal exchange: %w", err)
	}
	m := make(map[string]float64, len(obj))
	for k, s := range obj {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("unmarshal exchange %s: %w", k, err)
		}
		m[k] = v
	}
	return m, nil
}
