package types

// PropertyRef names a property definition inside an object type's schema,
// with the per-type required flag as supplied at create/edit time. The
// flag is not stored on the object type; it is folded into the referenced
// definition's RequiredFor set.
type PropertyRef struct {
	ID       string `json:"id"`
	Required bool   `json:"required"`
}

// ObjectType is a user-defined schema: an ordered set of property
// definition IDs plus a designated name property. NameProperty must be a
// member of Properties; the schema-evolution algorithm preserves this.
type ObjectType struct {
	ID           string   `json:"id"`           // UUID v7, generated on creation.
	User         string   `json:"user"`         // Owner; all reads and writes are scoped by it.
	Name         string   `json:"name"`         // Display name for the schema.
	NameProperty string   `json:"nameProperty"` // Property definition used as the object's display name.
	Properties   []string `json:"properties"`   // Ordered, duplicate-free property definition IDs.
}

// HasProperty reports whether the schema lists the given definition ID.
func (t *ObjectType) HasProperty(propertyDefID string) bool {
	for _, id := range t.Properties {
		if id == propertyDefID {
			return true
		}
	}
	return false
}

// ValidatePropertyRefs checks the schema rules shared by object type
// creation and editing: refs must be duplicate-free and nameProperty must
// be listed among them. Returns a ValidationError on violation.
func ValidatePropertyRefs(nameProperty string, refs []PropertyRef) error {
	seen := make(map[string]bool, len(refs))
	for _, r := range refs {
		if seen[r.ID] {
			return Validationf("duplicate values found in property array provided")
		}
		seen[r.ID] = true
	}
	if !seen[nameProperty] {
		return Validationf("name property specified is not listed in the properties collection")
	}
	return nil
}
