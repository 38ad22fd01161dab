package clierror

// Error category codes shared across the project. Human friendly names,
// not posix style. Reuse an existing code before adding a new one.
const (
	ErrCodeInvalidArgument  = "InvalidArgument"
	ErrCodePermissionDenied = "PermissionDenied"
	ErrCodeNotFound         = "NotFound"
	ErrCodeTimeout          = "Timeout"
	ErrCodeCanceled         = "Canceled"
	ErrCodeNetwork          = "Network"
	ErrCodeUnknown          = "Unknown"

	ErrCodeEnvironmentCheckFailed = "EnvironmentCheckFailed"
	ErrCodeRegistryUnavailable    = "RegistryUnavailable"
	ErrCodeScaffoldWriteFailed    = "ScaffoldWriteFailed"
	ErrCodeInstallerFailed        = "InstallerFailed"
	ErrCodeProfileInvalid         = "ProfileInvalid"
)
