package types

// Property definition name length bound, inclusive. Names must be
// non-empty and at most MaxNameLength characters.
const MaxNameLength = 30

// PropertyDefinition is a reusable typed attribute. Object types reference
// definitions by ID; the RequiredFor set is the reciprocal index naming
// every object type that mandates a non-empty value for this definition.
type PropertyDefinition struct {
	ID          string   `json:"id"`          // UUID v7, generated on creation.
	Name        string   `json:"name"`        // Human-readable name, length in (0, 30].
	DataType    string   `json:"dataType"`    // One of the DataType constants.
	RequiredFor []string `json:"requiredFor"` // IDs of object types requiring a value.
}

// IsRequiredFor reports whether a value for this definition is mandatory
// on objects of the given type.
func (p *PropertyDefinition) IsRequiredFor(objectTypeID string) bool {
	for _, id := range p.RequiredFor {
		if id == objectTypeID {
			return true
		}
	}
	return false
}

// AddRequiredFor inserts objectTypeID into the RequiredFor set.
// Idempotent: adding an ID already present has no effect.
func (p *PropertyDefinition) AddRequiredFor(objectTypeID string) {
	if p.IsRequiredFor(objectTypeID) {
		return
	}
	p.RequiredFor = append(p.RequiredFor, objectTypeID)
}

// RemoveRequiredFor removes objectTypeID from the RequiredFor set.
// Idempotent: removing an ID that is absent has no effect.
func (p *PropertyDefinition) RemoveRequiredFor(objectTypeID string) {
	out := p.RequiredFor[:0]
	for _, id := range p.RequiredFor {
		if id != objectTypeID {
			out = append(out, id)
		}
	}
	p.RequiredFor = out
}

// ValidateName checks the property definition naming rule shared with
// option sets: non-empty and at most MaxNameLength characters.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > MaxNameLength {
		return Validationf("name has to be at least one character in length, but not longer than %d", MaxNameLength)
	}
	return nil
}
