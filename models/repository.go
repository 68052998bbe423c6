package models

import "strings"

type Repository struct {
	Name     string
	FullName string
	Owner    string
	Private  bool
	Archived bool
}

// SplitFullName splits "owner/name". ok is false when either part is empty.
func SplitFullName(fullName string) (owner, name string, ok bool) {
	owner, name, found := strings.Cut(fullName, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}
