package store

// donorCompatibility maps a donor blood type to the recipient types it can
// serve, per universal donor rules. The table is medical fact; do not edit.
var donorCompatibility = map[string][]string{
	"O-":  {"O-", "O+", "A-", "A+", "B-", "B+", "AB-", "AB+"},
	"O+":  {"O+", "A+", "B+", "AB+"},
	"A-":  {"A-", "A+", "AB-", "AB+"},
	"A+":  {"A+", "AB+"},
	"B-":  {"B-", "B+", "AB-", "AB+"},
	"B+":  {"B+", "AB+"},
	"AB-": {"AB-", "AB+"},
	"AB+": {"AB+"},
}

// IsCompatible reports whether a donor with donorType blood can serve a
// request needing neededType. Empty or unknown types are never compatible.
func IsCompatible(donorType, neededType string) bool {
	if donorType == "" || neededType == "" {
		return false
	}
	for _, t := range donorCompatibility[donorType] {
		if t == neededType {
			return true
		}
	}
	return false
}

// BloodTypes lists the eight recognised blood types.
func BloodTypes() []string {
	return []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
}
