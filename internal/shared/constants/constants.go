package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"

	SuperadminRoleName = "superadmin"

	DefaultCurrency = "INR"

	TablePermissions     = "permissions"
	TableRoles           = "roles"
	TableRolePermissions = "role_permissions"
	TableUsers           = "users"
	TableUserRoles       = "user_roles"
	TableFiles           = "files"
	TableSampleProducts  = "sample_products"
	TablePools           = "pools"
	TableDonations       = "donations"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgAuthRequired        = "Authentication required"
	ErrMsgInsufficientPerms   = "Insufficient permissions"
)
