package auth

import (
	"slices"

	"kariyer_backend/internal/models"
)

const (
	PermUsersRead      = "users:read"
	PermUsersWrite     = "users:write"
	PermBillingApprove = "billing:approve"
	PermContentWrite   = "content:write"
	PermSettingsWrite  = "settings:write"
	PermAuditRead      = "audit:read"
	PermWhatsAppManage = "whatsapp:manage"
	PermChatModerate   = "chat:moderate"
	PermSelfService    = "self:write"
)

// Permissions maps each role to what it may do in the back-office.
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		PermUsersRead,
		PermUsersWrite,
		PermBillingApprove,
		PermContentWrite,
		PermSettingsWrite,
		PermAuditRead,
		PermWhatsAppManage,
		PermChatModerate,
		PermSelfService,
	},
	models.UserRoleModerator: {
		PermUsersRead,
		PermContentWrite,
		PermChatModerate,
		PermSelfService,
	},
	models.UserRoleUser: {
		PermSelfService,
	},
}

func HasPermission(role models.UserRole, permission string) bool {
	return slices.Contains(Permissions[role], permission)
}
