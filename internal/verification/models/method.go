package models

import (
	dErrors "campuspass/pkg/domain-errors"
)

// MethodKind names a verification tier.
type MethodKind string

const (
	MethodPortal       MethodKind = "portal"
	MethodEmail        MethodKind = "email"
	MethodRegistration MethodKind = "registration"
	MethodWhatsApp     MethodKind = "whatsapp"
)

// CanonicalOrder is the fallback ranking used when a university configures nothing,
// and the tie-break for equal priorities.
var CanonicalOrder = []MethodKind{MethodPortal, MethodEmail, MethodRegistration, MethodWhatsApp}

// CanonicalIndex returns the method's position in CanonicalOrder, or len(CanonicalOrder)
// for unknown kinds so they sort last.
func CanonicalIndex(m MethodKind) int {
	for i, k := range CanonicalOrder {
		if k == m {
			return i
		}
	}
	return len(CanonicalOrder)
}

func (m MethodKind) IsValid() bool {
	return CanonicalIndex(m) < len(CanonicalOrder)
}

func (m MethodKind) String() string { return string(m) }

// ParseMethodKind validates a method name from storage or a request.
func ParseMethodKind(s string) (MethodKind, error) {
	m := MethodKind(s)
	if !m.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown verification method: "+s)
	}
	return m, nil
}

// MethodAvailability is one entry of a university's ordered method list.
type MethodAvailability struct {
	Method      MethodKind `json:"method"`
	IsAvailable bool       `json:"is_available"`
	Priority    int        `json:"priority"`
}
