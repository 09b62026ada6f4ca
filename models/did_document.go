package models

// DIDDocument is the subset of a W3C DID document served by the PLC directory
// that the server relies on.
type DIDDocument struct {
	Context            []string             `json:"@context,omitempty"`
	ID                 string               `json:"id"`
	AlsoKnownAs        []string             `json:"alsoKnownAs,omitempty"`
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`
	Service            []DIDService         `json:"service,omitempty"`
}

// VerificationMethod is a public key entry of a [DIDDocument].
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase,omitempty"`
}

// DIDService is a service entry of a [DIDDocument].
type DIDService struct {
	ID              string `json:"id,omitempty"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// PDSEndpoint returns the endpoint of the #atproto_pds service, if any.
func (d DIDDocument) PDSEndpoint() string {
	for _, s := range d.Service {
		if s.ID == "#atproto_pds" || s.ID == d.ID+"#atproto_pds" {
			return s.ServiceEndpoint
		}
	}
	return ""
}
