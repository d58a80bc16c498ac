package shaping

import "github.com/labpool/labpool/internal/application/access"

var allGroups = []Group{GroupPublic, GroupUser, GroupAdmin}

// declaredGroups lists the groups each operation exposes. Operations not
// listed expose every group.
var declaredGroups = map[access.Operation][]Group{
	access.OpRolesCreate:            {GroupAdmin},
	access.OpRolesList:              {GroupAdmin, GroupUser},
	access.OpRolesGet:               {GroupAdmin, GroupUser},
	access.OpRolesUpdate:            {GroupAdmin},
	access.OpRolesAssignPermissions: {GroupAdmin},
	access.OpRolesRemovePermissions: {GroupAdmin},

	access.OpFilesUpload: {GroupAdmin, GroupUser},
	access.OpFilesCreate: {GroupAdmin},
	access.OpFilesList:   {GroupAdmin, GroupUser},
	access.OpFilesMine:   {GroupAdmin, GroupUser},
	access.OpFilesGet:    {GroupAdmin, GroupUser},
	access.OpFilesUpdate: {GroupAdmin, GroupUser},

	access.OpSampleProductsCreate: {GroupAdmin},
	access.OpSampleProductsList:   {GroupUser},
	access.OpSampleProductsGet:    {GroupUser},
	access.OpSampleProductsUpdate: {GroupAdmin},

	access.OpPoolsCreate:  {GroupUser},
	access.OpPoolsList:    {GroupUser},
	access.OpPoolsMine:    {GroupUser},
	access.OpPoolsGet:     {GroupUser},
	access.OpPoolsUpdate:  {GroupUser},
	access.OpPoolsRestore: {GroupUser},
	access.OpPoolsApprove: {GroupUser},
	access.OpPoolsReject:  {GroupUser},

	access.OpDonationsList: {GroupAdmin, GroupUser},
	// Anonymous callers reach these two, so public stays declared.
	access.OpDonationsGet:    {GroupPublic, GroupUser},
	access.OpDonationsByPool: {GroupPublic, GroupUser},
	access.OpDonationsMine:   {GroupUser},
}

// DeclaredGroups returns the groups op exposes.
func DeclaredGroups(op access.Operation) []Group {
	if g, ok := declaredGroups[op]; ok {
		return g
	}
	return allGroups
}

// activeGroups cuts declared down to what tier can reach. Admins keep
// everything declared.
func activeGroups(t Tier, declared []Group) map[Group]bool {
	out := make(map[Group]bool, len(declared))
	for _, g := range declared {
		switch {
		case t == TierAdmin,
			t == TierUser && (g == GroupPublic || g == GroupUser),
			g == GroupPublic:
			out[g] = true
		}
	}
	return out
}
