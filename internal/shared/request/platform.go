package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType prefers the explicit X-Client-Type header and falls
// back to sniffing the user agent.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(clientHeader) {
	case ClientWeb, ClientMobile:
		return strings.ToLower(clientHeader)
	}

	if strings.Contains(userAgent, "Mozilla") {
		return ClientWeb
	}
	return ClientMobile
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
