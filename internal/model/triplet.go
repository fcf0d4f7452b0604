package model

// Triplet represents a structured extraction result:
// a predicate plus subject/object arguments and named semantic modifiers.
//
// Wire format: {key1="value1", key2="value2"} Predicate(Subject, Object)
//
// An empty string means the argument is absent (the wire format renders it
// as the literal token "null"). Triplets are value types: revision never
// mutates an existing Triplet, it produces a new one.
type Triplet struct {
	Predicate string `json:"predicate,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Object    string `json:"object,omitempty"`
	Mods      Mods   `json:"mods,omitempty"`

	// Raw is the untouched model output this triplet was parsed from,
	// kept for audit. It does not participate in equality.
	Raw string `json:"raw,omitempty"`
}

// Mod is a single modifier role assignment.
type Mod struct {
	Role  string `json:"role"`
	Value string `json:"value"`
}

// Mods is an ordered list of modifier assignments. Order is preserved for
// serialization; lookups return the last assignment for a role.
type Mods []Mod

// Get returns the value for a role and whether it is present.
func (m Mods) Get(role string) (string, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Role == role {
			return m[i].Value, true
		}
	}
	return "", false
}

// Has reports whether a role is present.
func (m Mods) Has(role string) bool {
	_, ok := m.Get(role)
	return ok
}

// Roles returns the role names in serialization order.
func (m Mods) Roles() []string {
	roles := make([]string, 0, len(m))
	for _, mod := range m {
		roles = append(roles, mod.Role)
	}
	return roles
}

// Equal compares two triplets on predicate, arguments and modifiers,
// ignoring raw-text provenance.
func (t Triplet) Equal(other Triplet) bool {
	if t.Predicate != other.Predicate || t.Subject != other.Subject || t.Object != other.Object {
		return false
	}
	if len(t.Mods) != len(other.Mods) {
		return false
	}
	for i := range t.Mods {
		if t.Mods[i] != other.Mods[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether parsing produced no structure at all
// (total grammar mismatch, the "soft failure" case).
func (t Triplet) IsEmpty() bool {
	return t.Predicate == "" && t.Subject == "" && t.Object == "" && len(t.Mods) == 0
}
