package access

import (
	vo "github.com/labpool/labpool/internal/domain/permission/value_objects"
)

// Requirement is one check an operation needs. When InstanceParam is set
// the check targets the record whose id is that path parameter.
type Requirement struct {
	Action        vo.Action
	Resource      vo.Resource
	InstanceParam string
}

type Operation string

const (
	// OpAuthProfile and OpDonationsMine only need a signed-in caller. They
	// sit behind RequireAuth and have no entry in the requirement table.
	OpAuthProfile   Operation = "auth.profile"
	OpDonationsMine Operation = "donations.mine"

	OpUsersCreate      Operation = "users.create"
	OpUsersList        Operation = "users.list"
	OpUsersGet         Operation = "users.get"
	OpUsersUpdate      Operation = "users.update"
	OpUsersDelete      Operation = "users.delete"
	OpUsersAssignRoles Operation = "users.assign_roles"

	OpRolesCreate            Operation = "roles.create"
	OpRolesList              Operation = "roles.list"
	OpRolesGet               Operation = "roles.get"
	OpRolesUpdate            Operation = "roles.update"
	OpRolesDelete            Operation = "roles.delete"
	OpRolesRestore           Operation = "roles.restore"
	OpRolesAssignPermissions Operation = "roles.assign_permissions"
	OpRolesRemovePermissions Operation = "roles.remove_permissions"

	OpPermissionsCreate     Operation = "permissions.create"
	OpPermissionsBulkCreate Operation = "permissions.bulk_create"
	OpPermissionsList       Operation = "permissions.list"
	OpPermissionsGet        Operation = "permissions.get"
	OpPermissionsUpdate     Operation = "permissions.update"
	OpPermissionsDelete     Operation = "permissions.delete"
	OpPermissionsRestore    Operation = "permissions.restore"

	OpFilesUpload     Operation = "files.upload"
	OpFilesCreate     Operation = "files.create"
	OpFilesList       Operation = "files.list"
	OpFilesMine       Operation = "files.mine"
	OpFilesGet        Operation = "files.get"
	OpFilesDownload   Operation = "files.download"
	OpFilesUpdate     Operation = "files.update"
	OpFilesRestore    Operation = "files.restore"
	OpFilesDelete     Operation = "files.delete"
	OpFilesHardDelete Operation = "files.hard_delete"

	OpSampleProductsCreate  Operation = "sample_products.create"
	OpSampleProductsList    Operation = "sample_products.list"
	OpSampleProductsGet     Operation = "sample_products.get"
	OpSampleProductsUpdate  Operation = "sample_products.update"
	OpSampleProductsDelete  Operation = "sample_products.delete"
	OpSampleProductsRestore Operation = "sample_products.restore"

	OpPoolsCreate     Operation = "pools.create"
	OpPoolsList       Operation = "pools.list"
	OpPoolsMine       Operation = "pools.mine"
	OpPoolsGet        Operation = "pools.get"
	OpPoolsUpdate     Operation = "pools.update"
	OpPoolsDelete     Operation = "pools.delete"
	OpPoolsHardDelete Operation = "pools.hard_delete"
	OpPoolsRestore    Operation = "pools.restore"
	OpPoolsApprove    Operation = "pools.approve"
	OpPoolsReject     Operation = "pools.reject"

	OpDonationsList          Operation = "donations.list"
	OpDonationsCreateOrder   Operation = "donations.create_order"
	OpDonationsVerifyPayment Operation = "donations.verify_payment"
	OpDonationsGet           Operation = "donations.get"
	OpDonationsByPool        Operation = "donations.by_pool"
	OpDonationsPoolStats     Operation = "donations.pool_stats"
)

func req(action vo.Action, resource vo.Resource) Requirement {
	return Requirement{Action: action, Resource: resource}
}

var (
	none = []Requirement{}

	requirements = map[Operation][]Requirement{
		OpUsersCreate:      {req(vo.ActionCreate, vo.ResourceUser)},
		OpUsersList:        {req(vo.ActionRead, vo.ResourceUser)},
		OpUsersGet:         {{Action: vo.ActionRead, Resource: vo.ResourceUser, InstanceParam: "id"}},
		OpUsersUpdate:      {req(vo.ActionUpdate, vo.ResourceUser)},
		OpUsersDelete:      {req(vo.ActionDelete, vo.ResourceUser)},
		OpUsersAssignRoles: {req(vo.ActionUpdate, vo.ResourceUser), req(vo.ActionUpdate, vo.ResourceRole)},

		OpRolesCreate:            {req(vo.ActionCreate, vo.ResourceRole)},
		OpRolesList:              {req(vo.ActionRead, vo.ResourceRole)},
		OpRolesGet:               {req(vo.ActionRead, vo.ResourceRole)},
		OpRolesUpdate:            {req(vo.ActionUpdate, vo.ResourceRole)},
		OpRolesDelete:            {req(vo.ActionDelete, vo.ResourceRole)},
		OpRolesRestore:           {req(vo.ActionUpdate, vo.ResourceRole)},
		OpRolesAssignPermissions: {req(vo.ActionUpdate, vo.ResourceRole)},
		OpRolesRemovePermissions: {req(vo.ActionUpdate, vo.ResourceRole)},

		OpPermissionsCreate:     {req(vo.ActionCreate, vo.ResourcePermission)},
		OpPermissionsBulkCreate: {req(vo.ActionCreate, vo.ResourcePermission)},
		OpPermissionsList:       {req(vo.ActionRead, vo.ResourcePermission)},
		OpPermissionsGet:        {req(vo.ActionRead, vo.ResourcePermission)},
		OpPermissionsUpdate:     {req(vo.ActionUpdate, vo.ResourcePermission)},
		OpPermissionsDelete:     {req(vo.ActionDelete, vo.ResourcePermission)},
		OpPermissionsRestore:    {req(vo.ActionUpdate, vo.ResourcePermission)},

		OpFilesUpload:     {req(vo.ActionCreate, vo.ResourceFile)},
		OpFilesCreate:     {req(vo.ActionCreate, vo.ResourceFile)},
		OpFilesList:       {req(vo.ActionRead, vo.ResourceFile)},
		OpFilesMine:       {req(vo.ActionRead, vo.ResourceFile)},
		OpFilesGet:        {req(vo.ActionRead, vo.ResourceFile)},
		OpFilesDownload:   {req(vo.ActionRead, vo.ResourceFile)},
		OpFilesUpdate:     {req(vo.ActionUpdate, vo.ResourceFile)},
		OpFilesRestore:    {req(vo.ActionUpdate, vo.ResourceFile)},
		OpFilesDelete:     {req(vo.ActionDelete, vo.ResourceFile)},
		OpFilesHardDelete: {req(vo.ActionDelete, vo.ResourceFile)},

		OpSampleProductsCreate:  {req(vo.ActionCreate, vo.ResourceSampleProduct)},
		OpSampleProductsList:    {req(vo.ActionRead, vo.ResourceSampleProduct)},
		OpSampleProductsGet:     {req(vo.ActionRead, vo.ResourceSampleProduct)},
		OpSampleProductsUpdate:  {req(vo.ActionUpdate, vo.ResourceSampleProduct)},
		OpSampleProductsDelete:  {req(vo.ActionDelete, vo.ResourceSampleProduct)},
		OpSampleProductsRestore: {req(vo.ActionUpdate, vo.ResourceSampleProduct)},

		OpPoolsCreate:     {req(vo.ActionCreate, vo.ResourcePool)},
		OpPoolsList:       {req(vo.ActionRead, vo.ResourcePool)},
		OpPoolsMine:       {req(vo.ActionRead, vo.ResourcePool)},
		OpPoolsGet:        {req(vo.ActionRead, vo.ResourcePool)},
		OpPoolsUpdate:     {req(vo.ActionUpdate, vo.ResourcePool)},
		OpPoolsDelete:     {req(vo.ActionDelete, vo.ResourcePool)},
		OpPoolsHardDelete: {req(vo.ActionManage, vo.ResourcePool)},
		OpPoolsRestore:    {req(vo.ActionManage, vo.ResourcePool)},
		OpPoolsApprove:    {req(vo.ActionManage, vo.ResourcePool)},
		OpPoolsReject:     {req(vo.ActionManage, vo.ResourcePool)},

		OpDonationsList:          {req(vo.ActionRead, vo.ResourceDonation)},
		OpDonationsCreateOrder:   none,
		OpDonationsVerifyPayment: none,
		OpDonationsGet:           none,
		OpDonationsByPool:        none,
		OpDonationsPoolStats:     none,
	}
)

// RequirementsFor returns the checks for op and whether op is known.
func RequirementsFor(op Operation) ([]Requirement, bool) {
	r, ok := requirements[op]
	return r, ok
}
