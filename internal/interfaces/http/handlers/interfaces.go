package handlers

import (
	"context"

	donationdto "github.com/labpool/labpool/internal/application/donation/dto"
	donationusecases "github.com/labpool/labpool/internal/application/donation/usecases"
	fileapp "github.com/labpool/labpool/internal/application/file"
	filedto "github.com/labpool/labpool/internal/application/file/dto"
	permdto "github.com/labpool/labpool/internal/application/permission/dto"
	pooldto "github.com/labpool/labpool/internal/application/pool/dto"
	roledto "github.com/labpool/labpool/internal/application/role/dto"
	spdto "github.com/labpool/labpool/internal/application/sampleproduct/dto"
	userdto "github.com/labpool/labpool/internal/application/user/dto"
)

// Service interfaces consumed by the handlers, so each handler can be
// tested against a mock.

type authService interface {
	Login(ctx context.Context, req userdto.LoginRequest) (*userdto.LoginResponse, error)
	Refresh(ctx context.Context, req userdto.RefreshRequest) (*userdto.LoginResponse, error)
	Profile(ctx context.Context, userID string) (*userdto.UserDTO, error)
}

type userService interface {
	Create(ctx context.Context, req userdto.CreateUserRequest) (*userdto.UserDTO, error)
	Get(ctx context.Context, id string) (*userdto.UserDTO, error)
	List(ctx context.Context, req userdto.ListUsersRequest) ([]*userdto.UserDTO, int64, error)
	Update(ctx context.Context, id string, req userdto.UpdateUserRequest) (*userdto.UserDTO, error)
	Delete(ctx context.Context, id string) error
	AssignRoles(ctx context.Context, id string, req userdto.AssignRolesRequest) (*userdto.UserDTO, error)
}

type roleService interface {
	Create(ctx context.Context, req roledto.CreateRoleRequest) (*roledto.RoleDTO, error)
	Get(ctx context.Context, id string) (*roledto.RoleDTO, error)
	List(ctx context.Context, req roledto.ListRolesRequest) ([]*roledto.RoleDTO, int64, error)
	Update(ctx context.Context, id string, req roledto.UpdateRoleRequest) (*roledto.RoleDTO, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*roledto.RoleDTO, error)
	AssignPermissions(ctx context.Context, id string, req roledto.PermissionIDsRequest) (*roledto.RoleDTO, error)
	RemovePermissions(ctx context.Context, id string, req roledto.PermissionIDsRequest) (*roledto.RoleDTO, error)
}

type permissionService interface {
	Create(ctx context.Context, req permdto.CreatePermissionRequest) (*permdto.PermissionDTO, error)
	BulkCreate(ctx context.Context, req permdto.BulkCreatePermissionsRequest) ([]*permdto.PermissionDTO, error)
	Get(ctx context.Context, id string) (*permdto.PermissionDTO, error)
	List(ctx context.Context, req permdto.ListPermissionsRequest) ([]*permdto.PermissionDTO, int64, error)
	Update(ctx context.Context, id string, req permdto.UpdatePermissionRequest) (*permdto.PermissionDTO, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*permdto.PermissionDTO, error)
}

type fileService interface {
	Upload(ctx context.Context, cmd fileapp.UploadCommand) (*filedto.FileDTO, error)
	Create(ctx context.Context, uploaderID string, req filedto.CreateFileRequest) (*filedto.FileDTO, error)
	Get(ctx context.Context, id string) (*filedto.FileDTO, error)
	List(ctx context.Context, req filedto.ListFilesRequest) ([]*filedto.FileDTO, int64, error)
	Download(ctx context.Context, id string) (*fileapp.Download, error)
	Update(ctx context.Context, id string, req filedto.UpdateFileRequest) (*filedto.FileDTO, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*filedto.FileDTO, error)
	HardDelete(ctx context.Context, id string) error
}

type sampleProductService interface {
	Create(ctx context.Context, req spdto.CreateSampleProductRequest) (*spdto.SampleProductDTO, error)
	Get(ctx context.Context, id string) (*spdto.SampleProductDTO, error)
	List(ctx context.Context, req spdto.ListSampleProductsRequest) ([]*spdto.SampleProductDTO, int64, error)
	Update(ctx context.Context, id string, req spdto.UpdateSampleProductRequest) (*spdto.SampleProductDTO, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*spdto.SampleProductDTO, error)
}

type poolService interface {
	Create(ctx context.Context, ownerID string, req pooldto.CreatePoolRequest) (*pooldto.PoolDTO, error)
	Get(ctx context.Context, id string) (*pooldto.PoolDTO, error)
	List(ctx context.Context, req pooldto.ListPoolsRequest) ([]*pooldto.PoolDTO, int64, error)
	ListMine(ctx context.Context, ownerID string, page, pageSize int) ([]*pooldto.PoolDTO, int64, error)
	Update(ctx context.Context, callerID, id string, req pooldto.UpdatePoolRequest) (*pooldto.PoolDTO, error)
	Delete(ctx context.Context, callerID, id string) error
	HardDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*pooldto.PoolDTO, error)
	Approve(ctx context.Context, id string) (*pooldto.PoolDTO, error)
	Reject(ctx context.Context, id string) (*pooldto.PoolDTO, error)
}

type createOrderUseCase interface {
	Execute(ctx context.Context, cmd donationusecases.CreateOrderCommand) (*donationdto.CreateOrderResponse, error)
}

type verifyPaymentUseCase interface {
	Execute(ctx context.Context, cmd donationusecases.VerifyPaymentCommand) (*donationdto.VerifyPaymentResponse, error)
}

type donationQueries interface {
	Get(ctx context.Context, id string) (*donationdto.DonationDTO, error)
	List(ctx context.Context, req donationdto.ListDonationsRequest) ([]*donationdto.DonationDTO, int64, error)
	ListByPool(ctx context.Context, poolID string, page, pageSize int) ([]*donationdto.DonationDTO, int64, error)
	ListMine(ctx context.Context, userID string, page, pageSize int) ([]*donationdto.DonationDTO, int64, error)
	PoolStats(ctx context.Context, poolID string) (*donationdto.PoolStatsDTO, error)
}
