package types

// Category represents service categories
type Category string

const (
	CategoryListings Category = "listings"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ErrorKind classifies a failed tool invocation
type ErrorKind string

const (
	ErrPolicyDenied ErrorKind = "POLICY_DENIED"
	ErrNetwork      ErrorKind = "NETWORK_ERROR"
	ErrTimeout      ErrorKind = "TIMEOUT_ERROR"
	ErrParse        ErrorKind = "PARSE_ERROR"
	ErrInput        ErrorKind = "INPUT_ERROR"
)

// Result represents a tool execution result
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}
