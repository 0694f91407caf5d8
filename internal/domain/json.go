package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// jsonFloat encodes non-finite values as strings ("NaN", "+Inf", "-Inf"),
// which encoding/json otherwise refuses.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = jsonFloat(math.NaN())
		case "+Inf":
			*f = jsonFloat(math.Inf(1))
		case "-Inf":
			*f = jsonFloat(math.Inf(-1))
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type intervalJSON struct {
	Lower jsonFloat `json:"lower"`
	Upper jsonFloat `json:"upper"`
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{jsonFloat(iv.Lower), jsonFloat(iv.Upper)})
}

func (iv *Interval) UnmarshalJSON(b []byte) error {
	var w intervalJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*iv = Interval{Lower: float64(w.Lower), Upper: float64(w.Upper)}
	return nil
}

type quadratureJSON struct {
	Rule         Rule      `json:"rule"`
	Subintervals int       `json:"subintervals"`
	Area         jsonFloat `json:"area"`
}

func (q QuadratureResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(quadratureJSON{q.Rule, q.Subintervals, jsonFloat(q.Area)})
}

func (q *QuadratureResult) UnmarshalJSON(b []byte) error {
	var w quadratureJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*q = QuadratureResult{Rule: w.Rule, Subintervals: w.Subintervals, Area: float64(w.Area)}
	return nil
}

type fixedJSON struct {
	TrueValueMidpoint  jsonFloat        `json:"true_value_midpoint"`
	TrueValueTrapezoid jsonFloat        `json:"true_value_trapezoid"`
	Midpoint           QuadratureResult `json:"midpoint"`
	Trapezoid          QuadratureResult `json:"trapezoid"`
	MidpointError      jsonFloat        `json:"midpoint_error"`
	TrapezoidError     jsonFloat        `json:"trapezoid_error"`
	Verdict            Verdict          `json:"verdict"`
}

func (r FixedReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(fixedJSON{
		TrueValueMidpoint:  jsonFloat(r.TrueValueMidpoint),
		TrueValueTrapezoid: jsonFloat(r.TrueValueTrapezoid),
		Midpoint:           r.Midpoint,
		Trapezoid:          r.Trapezoid,
		MidpointError:      jsonFloat(r.MidpointError),
		TrapezoidError:     jsonFloat(r.TrapezoidError),
		Verdict:            r.Verdict,
	})
}

func (r *FixedReport) UnmarshalJSON(b []byte) error {
	var w fixedJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = FixedReport{
		TrueValueMidpoint:  float64(w.TrueValueMidpoint),
		TrueValueTrapezoid: float64(w.TrueValueTrapezoid),
		Midpoint:           w.Midpoint,
		Trapezoid:          w.Trapezoid,
		MidpointError:      float64(w.MidpointError),
		TrapezoidError:     float64(w.TrapezoidError),
		Verdict:            w.Verdict,
	}
	return nil
}

type toleranceJSON struct {
	TrueValue      jsonFloat        `json:"true_value"`
	Tolerance      jsonFloat        `json:"tolerance"`
	Midpoint       QuadratureResult `json:"midpoint"`
	Trapezoid      QuadratureResult `json:"trapezoid"`
	MidpointError  jsonFloat        `json:"midpoint_error"`
	TrapezoidError jsonFloat        `json:"trapezoid_error"`
	Verdict        Verdict          `json:"verdict"`
}

func (r ToleranceReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(toleranceJSON{
		TrueValue:      jsonFloat(r.TrueValue),
		Tolerance:      jsonFloat(r.Tolerance),
		Midpoint:       r.Midpoint,
		Trapezoid:      r.Trapezoid,
		MidpointError:  jsonFloat(r.MidpointError),
		TrapezoidError: jsonFloat(r.TrapezoidError),
		Verdict:        r.Verdict,
	})
}

func (r *ToleranceReport) UnmarshalJSON(b []byte) error {
	var w toleranceJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = ToleranceReport{
		TrueValue:      float64(w.TrueValue),
		Tolerance:      float64(w.Tolerance),
		Midpoint:       w.Midpoint,
		Trapezoid:      w.Trapezoid,
		MidpointError:  float64(w.MidpointError),
		TrapezoidError: float64(w.TrapezoidError),
		Verdict:        w.Verdict,
	}
	return nil
}
