package asaas

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Money is an amount in cents. The provider API speaks decimal BRL
// (e.g. 149.90), so the JSON round trip converts between the two.
type Money int64

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m)/100, 'f', 2, 64)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	value, err := raw.Float64()
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = Money(math.Round(value * 100))
	return nil
}
