package permission

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/labpool/labpool/internal/domain/permission"
	vo "github.com/labpool/labpool/internal/domain/permission/value_objects"
	"github.com/labpool/labpool/internal/shared/logger"
)

// abilityModel matches a request (obj, act, inst) against grants
// (obj, act, owner). "all" covers every object, "manage" every action and
// "*" every instance. A grant with a concrete owner only matches a request
// naming that exact instance.
const abilityModel = `
[request_definition]
r = obj, act, inst

[policy_definition]
p = obj, act, owner

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (p.obj == "all" || p.obj == r.obj) && (p.act == "manage" || p.act == r.act) && (p.owner == "*" || p.owner == r.inst)
`

// noInstance never equals a grant owner. Owners are never empty.
const noInstance = ""

var _ permission.AbilityFactory = (*AbilityFactory)(nil)

// AbilityFactory builds a fresh in-memory casbin enforcer per subject.
// Nothing is cached between calls.
type AbilityFactory struct {
	logger logger.Interface
}

func NewAbilityFactory(log logger.Interface) *AbilityFactory {
	return &AbilityFactory{logger: log}
}

func (f *AbilityFactory) For(subject permission.Subject) permission.Ability {
	grants := permission.GrantsFor(subject)

	m, err := model.NewModelFromString(abilityModel)
	if err != nil {
		f.logger.Errorw("failed to build ability model", "error", err)
		return denyAll{}
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		f.logger.Errorw("failed to create ability enforcer", "error", err)
		return denyAll{}
	}

	rules := make([][]string, 0, len(grants))
	for _, g := range grants {
		if g.OwnerID == "" {
			continue
		}
		rules = append(rules, []string{g.Resource.String(), g.Action.String(), g.OwnerID})
	}
	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			f.logger.Errorw("failed to load ability grants", "error", err, "user_id", subject.UserID)
			return denyAll{}
		}
	}

	return &ability{enforcer: enforcer, userID: subject.UserID, logger: f.logger}
}

type ability struct {
	enforcer *casbin.Enforcer
	userID   string
	logger   logger.Interface
}

func (a *ability) Can(action vo.Action, resource vo.Resource, instance *permission.Instance) bool {
	inst := noInstance
	if instance != nil {
		inst = instance.ID
	}

	ok, err := a.enforcer.Enforce(resource.String(), action.String(), inst)
	if err != nil {
		a.logger.Warnw("ability check failed",
			"error", err,
			"user_id", a.userID,
			"action", action,
			"resource", resource,
		)
		return false
	}
	return ok
}

type denyAll struct{}

func (denyAll) Can(vo.Action, vo.Resource, *permission.Instance) bool { return false }
