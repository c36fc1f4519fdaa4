package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for one HTTP exchange.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as ping.
	ShortHTTPTimeout = 10 * time.Second

	// NATSConnectTimeout bounds the initial connection to a NATS server.
	NATSConnectTimeout = 5 * time.Second
)

// Server defaults.
const (
	// DefaultScheme is the scheme of MAS servers.
	DefaultScheme = "https"

	// DefaultPort is the port of MAS servers.
	DefaultPort = 443

	// DefaultRootPath is the path MAS is mounted under.
	DefaultRootPath = "/mas"
)

// Pagination.
const (
	// DefaultPageSize is the page size for content types without an
	// override. At ~300 bytes per record a page stays under 1 MiB.
	DefaultPageSize uint = 3500

	// ProcessPageSize is the page size for process listings.
	ProcessPageSize uint = 2800

	// NamespacePageSize is the page size for namespace listings.
	NamespacePageSize uint = 3700

	// UserPageSize is the page size for user listings.
	UserPageSize uint = 12500
)

// Concurrency limits.
const (
	// DefaultPageFetchConcurrency bounds concurrent page fetches of a list.
	DefaultPageFetchConcurrency = 4

	// MaxPageFetchConcurrency caps user-supplied concurrency.
	MaxPageFetchConcurrency = 32

	// MaxPageCount is the largest page number or page count accepted from
	// a response.
	MaxPageCount uint = 1 << 20
)

// Credential defaults.
const (
	// DefaultCredentialProtocol is the protocol of new credentials.
	DefaultCredentialProtocol = "ssh"

	// DefaultCredentialPort is the port of new credentials.
	DefaultCredentialPort = 22
)

// Request formatting.
const (
	// InvokeDateLayout formats the date_invoke query parameter.
	InvokeDateLayout = "2006-01-02"

	// OutputsAction is the action that returns invocation output.
	OutputsAction = "display"

	// HoursPerDay converts invocation periods to durations.
	HoursPerDay = 24
)

// Profile store.
const (
	// DefaultProfileBucket is the NATS key-value bucket for server profiles.
	DefaultProfileBucket = "mas_servers"

	// CurrentProfileKey stores the name of the selected profile.
	CurrentProfileKey = "_current"
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate current/active items.
	CheckMarkSymbol = "✓"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)
