package permission

import (
	vo "github.com/labpool/labpool/internal/domain/permission/value_objects"
)

// OwnerAny marks a grant that is not restricted to one instance.
const OwnerAny = "*"

// Grant is one rule of an ability: action on resource, optionally limited
// to the instance whose id equals OwnerID.
type Grant struct {
	Action   vo.Action
	Resource vo.Resource
	OwnerID  string
}

// Subject is the authorization snapshot of a user: the roles loaded
// together with their permissions at the start of a request.
type Subject struct {
	UserID string
	Roles  []*Role
}

// GrantsFor derives the grant list for a subject.
//
// A subject holding the superadmin role gets manage on all. Otherwise each
// active role contributes its active permissions once per permission id;
// strings that do not parse into the closed action or resource sets grant
// nothing. A subject with no roles at all may read its own user record.
func GrantsFor(s Subject) []Grant {
	for _, r := range s.Roles {
		if r.IsSuperadmin() {
			return []Grant{{Action: vo.ActionManage, Resource: vo.ResourceAll, OwnerID: OwnerAny}}
		}
	}

	if len(s.Roles) == 0 {
		return []Grant{{Action: vo.ActionRead, Resource: vo.ResourceUser, OwnerID: s.UserID}}
	}

	var grants []Grant
	seen := make(map[string]bool)
	for _, r := range s.Roles {
		if !r.IsActive() {
			continue
		}
		for _, p := range r.Permissions() {
			if !p.IsActive() || seen[p.ID()] {
				continue
			}
			seen[p.ID()] = true

			action, ok := vo.ParseAction(p.Action())
			if !ok {
				continue
			}
			resource, ok := vo.ParseResource(p.Resource())
			if !ok {
				continue
			}
			grants = append(grants, Grant{Action: action, Resource: resource, OwnerID: OwnerAny})
		}
	}
	return grants
}
