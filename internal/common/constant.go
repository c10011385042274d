// Package common contains constants and sentinel errors shared by the
// CommunityHub client and the reference server.
package common

const (
	// AuthorizationHeaderName carries the Basic credential on privileged requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates client and server log lines.
	RequestIDHeaderName = "X-Request-ID"

	// BasicAuthScheme prefixes the encoded credential.
	BasicAuthScheme = "Basic"
)

// Keys of the persisted session in the client's local key/value store.
const (
	StorageKeyUser       = "authUser"
	StorageKeyAuthHeader = "authHeader"
)

// Image attachment limits, enforced by both sides.
const (
	MaxImageSize = 5 * 1024 * 1024
)

// AllowedImageTypes lists the accepted attachment MIME types and the file
// extension used when storing them.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ReservedAdminName is the built-in administrator account, which can never
// be deleted.
const ReservedAdminName = "admin"
