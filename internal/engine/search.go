package engine

import (
	"strings"

	"github.com/facetframe/facet/pkg/codec"
	"github.com/facetframe/facet/pkg/types"
)

// predicate is one compiled search condition: a comparison against the
// canonical value of the property value whose definition matches.
type predicate struct {
	propertyDef string
	operator    string
	value       types.Value
}

// compileConditions turns the declarative condition list into executable
// predicates. Each condition's raw value is parsed with the condition's
// declared data type. The declared type is deliberately trusted over the
// definition's stored type, so a mismatched pair compares against
// nothing rather than failing.
func compileConditions(conditions []types.SearchCondition) ([]predicate, error) {
	predicates := make([]predicate, 0, len(conditions))
	for _, cond := range conditions {
		if !types.ValidOperator(cond.Operator) {
			return nil, types.Validationf("unknown search operator %s", cond.Operator)
		}
		if !types.ValidDataType(cond.DataType) {
			return nil, types.Validationf("unknown data type %s in search condition", cond.DataType)
		}
		value, err := codec.Parse(cond.Value, cond.DataType)
		if err != nil {
			return nil, types.Validationf("invalid value %v for search condition on %s", cond.Value, cond.PropertyDef)
		}
		predicates = append(predicates, predicate{
			propertyDef: cond.PropertyDef,
			operator:    cond.Operator,
			value:       value,
		})
	}
	return predicates, nil
}

// matches reports whether the object satisfies the predicate. The object
// must carry a property value for the predicate's definition; a missing
// value never matches, whatever the operator.
func (p predicate) matches(object *types.Object) bool {
	pv := object.FindValue(p.propertyDef)
	if pv == nil {
		return false
	}
	stored := pv.Value
	switch p.operator {
	case types.OperatorEqual:
		return stored.Equal(p.value)
	case types.OperatorNotEqual:
		return !stored.Equal(p.value)
	case types.OperatorContains:
		return stored.Kind == types.KindText && p.value.Kind == types.KindText &&
			strings.Contains(stored.Text, p.value.Text)
	case types.OperatorLessThan:
		return ordered(stored, p.value, true)
	case types.OperatorGreaterThan:
		return ordered(stored, p.value, false)
	}
	return false
}

// ordered compares number against number and date against date. Any
// other pairing is false.
func ordered(stored, cond types.Value, less bool) bool {
	if stored.Kind != cond.Kind {
		return false
	}
	switch stored.Kind {
	case types.KindNumber:
		if less {
			return stored.Num < cond.Num
		}
		return stored.Num > cond.Num
	case types.KindDate:
		if less {
			return stored.Date.Before(cond.Date)
		}
		return stored.Date.After(cond.Date)
	}
	return false
}

// Search compiles the request and returns every object owned by the
// caller that is of one of the requested types (all types when
// unrestricted) and satisfies every condition.
func (s *Objects) Search(user string, req types.SearchRequest) ([]*types.Object, error) {
	predicates, err := compileConditions(req.Conditions)
	if err != nil {
		return nil, err
	}

	filter := map[string]any{"user": user}
	if len(req.Types) > 0 {
		filter["type"] = req.Types
	}
	candidates, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}

	results := make([]*types.Object, 0, len(candidates))
	for _, object := range candidates {
		keep := true
		for _, p := range predicates {
			if !p.matches(object) {
				keep = false
				break
			}
		}
		if keep {
			results = append(results, object)
		}
	}
	return results, nil
}
