package shaping

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/labpool/labpool/internal/application/access"
	vo "github.com/labpool/labpool/internal/domain/permission/value_objects"
	"github.com/labpool/labpool/internal/shared/logger"
)

type Tier int

const (
	TierPublic Tier = iota
	TierUser
	TierAdmin
)

func (t Tier) String() string {
	switch t {
	case TierAdmin:
		return "admin"
	case TierUser:
		return "user"
	default:
		return "public"
	}
}

// TierFor ranks a caller. Superadmins and holders of manage on users (or
// on all) are admins; any other signed-in caller is a user.
func TierFor(p *access.Principal) Tier {
	if p == nil || p.User == nil {
		return TierPublic
	}
	if p.User.IsSuperadmin() {
		return TierAdmin
	}
	if p.Ability != nil && p.Ability.Can(vo.ActionManage, vo.ResourceUser, nil) {
		return TierAdmin
	}
	return TierUser
}

// Shaper never fails a response: anything it cannot interpret is passed
// through untouched.
type Shaper struct {
	logger logger.Interface
}

func NewShaper(log logger.Interface) *Shaper {
	return &Shaper{logger: log}
}

// Shape returns v reduced to the fields of kind that op declares and tier
// can reach. v may be a single entity, a slice, or a paginated list with
// an "items" array.
func (s *Shaper) Shape(op access.Operation, tier Tier, kind Kind, v any) any {
	if v == nil {
		return nil
	}
	if _, ok := visibilityMap[kind]; !ok {
		return v
	}

	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warnw("response shaping skipped", "kind", kind, "error", err)
		return v
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		s.logger.Warnw("response shaping skipped", "kind", kind, "error", err)
		return v
	}

	return filter(generic, kind, activeGroups(tier, DeclaredGroups(op)))
}

func filter(v any, kind Kind, groups map[Group]bool) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, filter(item, kind, groups))
		}
		return out
	case map[string]any:
		if isPage(val) {
			out := make(map[string]any, len(val))
			for k, item := range val {
				out[k] = item
			}
			out["items"] = filter(val["items"], kind, groups)
			return out
		}
		return filterEntity(val, kind, groups)
	default:
		return v
	}
}

func isPage(m map[string]any) bool {
	items, ok := m["items"]
	if !ok {
		return false
	}
	if _, ok := items.([]any); !ok && items != nil {
		return false
	}
	_, hasTotal := m["total"]
	return hasTotal
}

func filterEntity(m map[string]any, kind Kind, groups map[Group]bool) map[string]any {
	table := visibilityMap[kind]
	out := make(map[string]any, len(m))
	for name, value := range m {
		f, ok := table[name]
		if !ok || !visible(f, groups) {
			continue
		}
		if f.Nested != "" && value != nil {
			value = filter(value, f.Nested, groups)
		}
		out[name] = value
	}
	return out
}

func visible(f Field, groups map[Group]bool) bool {
	for _, g := range f.Groups {
		if groups[g] {
			return true
		}
	}
	return false
}
