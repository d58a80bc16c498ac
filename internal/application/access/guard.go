package access

import (
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/shared/constants"
	"github.com/labpool/labpool/internal/shared/errors"
)

// Authorize checks every requirement against the principal. An empty list
// always passes; otherwise a missing principal is Unauthorized and the
// first failing requirement is Forbidden. params resolves InstanceParam.
func Authorize(p *Principal, reqs []Requirement, params func(string) string) error {
	if len(reqs) == 0 {
		return nil
	}
	if p == nil || p.Ability == nil {
		return errors.NewUnauthorizedError(constants.ErrMsgAuthRequired)
	}

	for _, r := range reqs {
		var instance *permission.Instance
		if r.InstanceParam != "" {
			var id string
			if params != nil {
				id = params(r.InstanceParam)
			}
			instance = &permission.Instance{Resource: r.Resource, ID: id}
		}
		if !p.Ability.Can(r.Action, r.Resource, instance) {
			return errors.NewForbiddenError(constants.ErrMsgInsufficientPerms)
		}
	}
	return nil
}

// AuthorizeOperation looks op up in the requirement table. Unknown
// operations are denied.
func AuthorizeOperation(p *Principal, op Operation, params func(string) string) error {
	reqs, ok := RequirementsFor(op)
	if !ok {
		return errors.NewForbiddenError(constants.ErrMsgInsufficientPerms, string(op))
	}
	return Authorize(p, reqs, params)
}
