package domain

// CalcInput carries the raw text inputs a host collects for one calculation:
// the function, both bounds, and either a subinterval count or a tolerance.
type CalcInput struct {
	Mode         Mode   `json:"mode"`
	Expression   string `json:"expression"`
	Lower        string `json:"lower"`
	Upper        string `json:"upper"`
	Subintervals string `json:"subintervals,omitempty"`
	Tolerance    string `json:"tolerance,omitempty"`
}

// IsEmpty reports whether every user-editable field is blank.
func (in CalcInput) IsEmpty() bool {
	return in.Expression == "" && in.Lower == "" && in.Upper == "" &&
		in.Subintervals == "" && in.Tolerance == ""
}
