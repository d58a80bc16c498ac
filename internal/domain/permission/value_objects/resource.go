package value_objects

import "strings"

type Resource string

// Resources a stored permission can grant.
const (
	ResourceUser       Resource = "user"
	ResourceRole       Resource = "role"
	ResourcePermission Resource = "permission"
	ResourceFile       Resource = "file"
	// ResourceAll is the wildcard subject.
	ResourceAll Resource = "all"
)

// Subjects that routes check but no permission string maps to. Only a
// grant on ResourceAll, for any action, satisfies them.
const (
	ResourcePool          Resource = "pool"
	ResourceSampleProduct Resource = "sample_product"
	ResourceDonation      Resource = "donation"
)

// ParseResource maps a stored resource string, case-insensitively, onto the
// grantable subjects. Anything else reports false and grants nothing.
func ParseResource(s string) (Resource, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return ResourceUser, true
	case "role":
		return ResourceRole, true
	case "permission":
		return ResourcePermission, true
	case "file":
		return ResourceFile, true
	case "all":
		return ResourceAll, true
	default:
		return "", false
	}
}

func (r Resource) String() string {
	return string(r)
}
