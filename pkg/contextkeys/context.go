package contextkeys

type contextKey string

// DBContextKey stores the *gorm.DB (pool or transaction) of a request.
const DBContextKey = contextKey("db")

// gin context keys set by the auth middleware
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)
