// File: params.go
// Role: Detail-name codec and parameter validation.
//
// A detail name is the short name alone for metrics without parameters, or
// Short_<key><value>_<key><value>… with keys in declared order and values in
// strconv 'g' shortest form. Parsing is strict: the name must be exactly the
// canonical encoding of the values it carries.

package metric

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Float64 {
			return false
		}
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	return v
}

// param binds one detail-name key to a field of a parameter struct.
type param struct {
	key string
	val *float64
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// encodeDetail renders short and ps as a detail name.
func encodeDetail(short string, ps []param) string {
	var b strings.Builder
	b.WriteString(short)
	for _, p := range ps {
		b.WriteByte('_')
		b.WriteString(p.key)
		b.WriteString(formatValue(*p.val))
	}

	return b.String()
}

// decodeDetail parses name into fresh values for ps, then validates them by
// running check (normally a struct validation) with the values applied. On
// success the values stay applied; on failure the previous ones are restored.
func decodeDetail(short, name string, ps []param, check func() error) error {
	if name == short {
		if len(ps) > 0 {
			return fmt.Errorf("%w: %q declares parameters but %q carries none", ErrInvalidParameter, short, name)
		}
		return nil
	}
	rest, ok := strings.CutPrefix(name, short+"_")
	if !ok || len(ps) == 0 {
		return fmt.Errorf("%w: %q is not a detail name of %s", ErrInvalidParameter, name, short)
	}

	tokens := strings.Split(rest, "_")
	values := make([]float64, len(ps))
	seen := make([]bool, len(ps))
	for _, tok := range tokens {
		k := matchKey(tok, ps)
		if k < 0 {
			return fmt.Errorf("%w: %s: unknown parameter %q", ErrInvalidParameter, short, tok)
		}
		if seen[k] {
			return fmt.Errorf("%w: %s: duplicate parameter %q", ErrInvalidParameter, short, ps[k].key)
		}
		v, err := strconv.ParseFloat(tok[len(ps[k].key):], 64)
		if err != nil {
			return fmt.Errorf("%w: %s: parameter %q: %v", ErrInvalidParameter, short, tok, err)
		}
		values[k], seen[k] = v, true
	}
	for k, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: %s: missing parameter %q", ErrInvalidParameter, short, ps[k].key)
		}
	}

	old := make([]float64, len(ps))
	for k, p := range ps {
		old[k] = *p.val
		*p.val = values[k]
	}
	restore := func() {
		for k, p := range ps {
			*p.val = old[k]
		}
	}
	if canon := encodeDetail(short, ps); canon != name {
		restore()
		return fmt.Errorf("%w: %q is not canonical, expected %q", ErrInvalidParameter, name, canon)
	}
	if err := check(); err != nil {
		restore()
		return fmt.Errorf("%w: %s: %v", ErrInvalidParameter, short, err)
	}

	return nil
}

// matchKey returns the index of the longest key prefixing tok, or -1.
func matchKey(tok string, ps []param) int {
	best := -1
	for k, p := range ps {
		if strings.HasPrefix(tok, p.key) && (best < 0 || len(p.key) > len(ps[best].key)) {
			best = k
		}
	}

	return best
}

// checkStruct validates s with the package validator.
func checkStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if fe, ok := err.(validator.ValidationErrors); ok && len(fe) > 0 {
			return fmt.Errorf("%s fails %s", strings.ToLower(fe[0].Field()), fe[0].Tag())
		}
		return err
	}

	return nil
}

// DecayParams parameterise the distance decay e^(−α·d) with α = −ln(P)/D:
// P is the probability of crossing distance D. Beta is the capacity exponent.
type DecayParams struct {
	D    float64 `validate:"gt=0,finite"`
	P    float64 `validate:"gt=0,lt=1"`
	Beta float64 `validate:"gte=0,finite"`
}

// DefaultDecayParams is d=1000, p=0.05, beta=1.
func DefaultDecayParams() DecayParams { return DecayParams{D: 1000, P: 0.05, Beta: 1} }

// Alpha returns −ln(P)/D.
func (d DecayParams) Alpha() float64 { return -math.Log(d.P) / d.D }

// Validate checks the parameter ranges.
func (d DecayParams) Validate() error {
	if err := checkStruct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	return nil
}

func (d *DecayParams) params() []param {
	return []param{{"d", &d.D}, {"p", &d.P}, {"beta", &d.Beta}}
}

// BetaParams carry only the capacity exponent.
type BetaParams struct {
	Beta float64 `validate:"gte=0,finite"`
}

func (b *BetaParams) params() []param { return []param{{"beta", &b.Beta}} }

// RadiusParams bound a neighbourhood by least-cost distance.
type RadiusParams struct {
	R float64 `validate:"gte=0,finite"`
}

func (r *RadiusParams) params() []param { return []param{{"r", &r.R}} }
