package handlers

// AppHandlers holds every HTTP handler of the API.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	SubscriptionHandler *SubscriptionHandler
	ConsultantHandler   *ConsultantHandler
	ChatHandler         *ChatHandler
	CVHandler           *CVHandler
	JobHandler          *JobHandler
	MediaHandler        *MediaHandler
	FileHandler         *FileHandler
	SettingsHandler     *SettingsHandler
	AdminHandler        *AdminHandler
	WhatsAppHandler     *WhatsAppHandler
}
