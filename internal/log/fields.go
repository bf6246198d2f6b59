package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldOwnerID    = "owner_id"
	FieldExpenseID  = "expense_id"
	FieldCategory   = "category"
	FieldAmount     = "amount_cents"
	FieldBackend    = "backend"
	FieldEmail      = "email"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStore    = "store"
	ComponentDocstore = "docstore"
	ComponentIdentity = "identity"
	ComponentEvents   = "events"
)

// Operations defines standard operation names.
const (
	OpLoad     = "load"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpClearAll = "clear_all"
	OpSignUp   = "sign_up"
	OpSignIn   = "sign_in"
	OpSignOut  = "sign_out"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
