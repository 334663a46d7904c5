package models

// ItemCode identifies an item or a product tree in the ERP system.
// Product trees share the code of the item they produce.
type ItemCode string

// IsValidItemCode reports whether s is a non-empty string of ASCII digits.
// Placeholder lines in SAP product trees (e.g. "KS'ER") fail this check.
func IsValidItemCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Valid reports whether the code may be fetched from the ERP system.
func (c ItemCode) Valid() bool {
	return IsValidItemCode(string(c))
}

// String returns the underlying string value.
func (c ItemCode) String() string {
	return string(c)
}
