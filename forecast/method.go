package forecast

import (
	"fmt"

	"github.com/sartorproj/goforecast/expsmooth"
)

// ResolvedMethod is the model that produced a result: a family plus, for
// exponential smoothing, the variant.
type ResolvedMethod struct {
	Family  Method
	Variant expsmooth.Variant
}

// Resolved methods, one per concrete model.
var (
	ResolvedLinear      = ResolvedMethod{Family: MethodLinear}
	ResolvedSimple      = ResolvedMethod{Family: MethodExpSmoothing, Variant: expsmooth.Simple}
	ResolvedHolt        = ResolvedMethod{Family: MethodExpSmoothing, Variant: expsmooth.Holt}
	ResolvedHoltWinters = ResolvedMethod{Family: MethodExpSmoothing, Variant: expsmooth.HoltWinters}
	ResolvedARIMA       = ResolvedMethod{Family: MethodARIMA}
)

// String returns the method tag, e.g. "exp_smoothing_holt_winters".
func (r ResolvedMethod) String() string {
	if r.Family == MethodExpSmoothing {
		return string(r.Family) + "_" + r.Variant.String()
	}
	return string(r.Family)
}

// ParseResolvedMethod is the inverse of String.
func ParseResolvedMethod(tag string) (ResolvedMethod, error) {
	for _, r := range []ResolvedMethod{ResolvedLinear, ResolvedSimple, ResolvedHolt, ResolvedHoltWinters, ResolvedARIMA} {
		if r.String() == tag {
			return r, nil
		}
	}
	return ResolvedMethod{}, fmt.Errorf("unknown method tag %q", tag)
}

// preference orders candidates on exact accuracy ties; higher wins.
func (r ResolvedMethod) preference() int {
	switch r {
	case ResolvedHoltWinters:
		return 4
	case ResolvedARIMA:
		return 3
	case ResolvedHolt:
		return 2
	case ResolvedSimple:
		return 1
	}
	return 0
}
