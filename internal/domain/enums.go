package domain

// Role distinguishes human-authored from system-authored messages.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the defined values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}
