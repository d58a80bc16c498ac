package models

// All lists every model in dependency order, for AutoMigrate in tests.
func All() []interface{} {
	return []interface{}{
		&PermissionModel{},
		&RoleModel{},
		&RolePermissionModel{},
		&UserModel{},
		&UserRoleModel{},
		&FileModel{},
		&SampleProductModel{},
		&PoolModel{},
		&DonationModel{},
	}
}
