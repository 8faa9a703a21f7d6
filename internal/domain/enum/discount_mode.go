package enum

import "encoding/json"

// DiscountMode selects how the raw discount input is interpreted. Percentage
// and fixed amount are mutually exclusive views over one discount_amount
// field; switching mode re-reads the same raw value under the new mode.
type DiscountMode int

const (
	DiscountModePercentage DiscountMode = 0
	DiscountModeFixed      DiscountMode = 1
)

func (m DiscountMode) String() string {
	return [...]string{"Percentage", "Fixed"}[m]
}

func (m DiscountMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *DiscountMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = DiscountMode(i)
		return nil
	}
	switch str {
	case "Percentage", "percentage", "percent":
		*m = DiscountModePercentage
	case "Fixed", "fixed", "amount":
		*m = DiscountModeFixed
	}
	return nil
}
