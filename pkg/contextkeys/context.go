package contextkeys

// custom type to avoid collisions with other packages
type contextKey string

// DBContextKey - key under which *gorm.DB is stored in the gin context
const DBContextKey = contextKey("db")

// Keys set by the auth middleware on the gin context
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)
