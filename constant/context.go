package constant

type ContextKey string

// IdentityKey holds the authenticated user attached by the auth middleware
const IdentityKey ContextKey = "identity"
