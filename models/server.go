package models

// HealthResponse is the output of the _health endpoint.
type HealthResponse struct {
	Version string `json:"version"`
}

// DescribeServerResponse is the output of com.atproto.server.describeServer.
type DescribeServerResponse struct {
	InviteCodeRequired   bool              `json:"inviteCodeRequired"`
	AvailableUserDomains []string          `json:"availableUserDomains"`
	DID                  string            `json:"did"`
	Links                map[string]string `json:"links,omitempty"`
}

// RecommendedDIDCredentials is the output of
// com.atproto.identity.getRecommendedDidCredentials.
type RecommendedDIDCredentials struct {
	RotationKeys []string              `json:"rotationKeys"`
	AlsoKnownAs  []string              `json:"alsoKnownAs"`
	Services     map[string]DIDService `json:"services"`
}

// XRPCError is the JSON body of every failed XRPC call.
type XRPCError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
