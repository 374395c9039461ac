package types

// Search operators. The set is closed; unknown operators are rejected
// when the condition list is compiled.
const (
	OperatorEqual       = "equal"
	OperatorNotEqual    = "not_equal"
	OperatorContains    = "contains"
	OperatorLessThan    = "less_than"
	OperatorGreaterThan = "greater_than"
)

// validOperators is the set of recognized search operators.
var validOperators = map[string]bool{
	OperatorEqual:       true,
	OperatorNotEqual:    true,
	OperatorContains:    true,
	OperatorLessThan:    true,
	OperatorGreaterThan: true,
}

// ValidOperator reports whether the given string is a recognized operator.
func ValidOperator(op string) bool {
	return validOperators[op]
}

// SearchCondition is one declarative predicate over a property value.
// DataType is declared by the caller and governs how Value is parsed; it
// is deliberately not cross-checked against the definition's stored data
// type, so a mismatched pair compares against nothing.
type SearchCondition struct {
	PropertyDef string `json:"propertyDef"`
	Operator    string `json:"operator"`
	DataType    string `json:"dataType"`
	Value       any    `json:"value"`
}

// SearchRequest restricts a search to a set of object types (empty means
// all types) and conjoins every condition. There is no OR or grouping.
type SearchRequest struct {
	Types      []string          `json:"types"`
	Conditions []SearchCondition `json:"conditions"`
}
