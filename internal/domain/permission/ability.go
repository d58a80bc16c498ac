package permission

import (
	vo "github.com/labpool/labpool/internal/domain/permission/value_objects"
)

// Instance identifies a concrete record an action targets.
type Instance struct {
	Resource vo.Resource
	ID       string
}

// Ability answers whether its subject may perform an action. It is built
// fresh for each request and never shared between users.
type Ability interface {
	// Can checks the action against the resource type, or against a single
	// record when instance is non-nil. Instance-restricted grants only
	// match when instance is given and its id equals the grant owner.
	Can(action vo.Action, resource vo.Resource, instance *Instance) bool
}

// AbilityFactory turns a subject snapshot into an Ability.
type AbilityFactory interface {
	For(subject Subject) Ability
}
