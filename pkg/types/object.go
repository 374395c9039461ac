package types

// PropertyValue is a single attribute's canonical value on an object. The
// definition's name and data type are denormalized at write time so reads
// need no extra resolution for presentation.
type PropertyValue struct {
	PropertyDef string // Property definition ID.
	Name        string // Definition name at last write.
	DataType    string // Definition data type at last write.
	Value       Value  // Canonical typed value; Empty when unset.
}

// Object is a typed instance of an object type, holding one PropertyValue
// per schema attribute that existed at last write.
type Object struct {
	ID           string          // UUID v7, generated on creation.
	User         string          // Owner; all queries are scoped by it.
	Type         string          // Object type ID.
	NameProperty string          // Copied from the object type at creation.
	Properties   []PropertyValue // Ordered per the schema at last write.
}

// FindValue returns the property value for the given definition ID, or
// nil when the object carries none.
func (o *Object) FindValue(propertyDefID string) *PropertyValue {
	for i := range o.Properties {
		if o.Properties[i].PropertyDef == propertyDefID {
			return &o.Properties[i]
		}
	}
	return nil
}

// PropertyInput is a caller-supplied raw value for one property at object
// creation or edit time. The raw value is validated and parsed against
// the definition's declared data type before anything is persisted.
type PropertyInput struct {
	PropertyDef string `json:"propertyDef"`
	Value       any    `json:"value"`
}
