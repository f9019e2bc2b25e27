package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	SubscriptionService SubscriptionService
	ConsultantService   ConsultantService
	ChatService         ChatService
	CVService           CVService
	JobService          JobService
	MediaService        MediaService
	SettingsService     SettingsService
	AuditService        AuditService
	AdminService        AdminService
	WhatsAppService     WhatsAppService
	NotificationService NotificationService
}
