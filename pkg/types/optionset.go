package types

// Option is one entry in an option set.
type Option struct {
	Name string `json:"name"`
}

// OptionSet is a reusable named list of options, kept for building
// pick-lists in clients. Option sets are not bound to property
// definitions; they are looked up by ID.
type OptionSet struct {
	ID      string   `json:"id"`      // UUID v7, generated on creation.
	Name    string   `json:"name"`    // Length in (0, 30], same rule as definition names.
	Options []Option `json:"options"` // Ordered options; may be empty.
}
