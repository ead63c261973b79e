package aterror

// Wire error codes from the verb protocol's §4.8 taxonomy. An unrecognised
// code maps to CodeUnknownAtClientException, carrying the raw code.
const (
	CodeServerException               = "AT0001"
	CodeDatastoreException            = "AT0002"
	CodeInvalidSyntax                 = "AT0003"
	CodeSocketError                   = "AT0004"
	CodeBufferLimitExceeded           = "AT0005"
	CodeHandshakeFailure              = "AT0008"
	CodeUnauthorizedClient            = "AT0009"
	CodeInternalServerError           = "AT0010"
	CodeInternalServerException       = "AT0011"
	CodeInboundConnectionLimitExceeded = "AT0012"
	CodeConnectionException           = "AT0013"
	CodeUnknownAtClientException      = "AT0014"
	CodeKeyNotFound                   = "AT0015"
	CodeUnableToConnectToSecondary    = "AT0021"
	CodeClientAuthenticationFailed    = "AT0401"
)

var codeMessages = map[string]string{
	CodeServerException:               "ServerException",
	CodeDatastoreException:            "DatastoreException",
	CodeInvalidSyntax:                 "InvalidSyntax",
	CodeSocketError:                   "SocketError",
	CodeBufferLimitExceeded:           "BufferLimitExceeded",
	CodeHandshakeFailure:              "HandshakeFailure",
	CodeUnauthorizedClient:            "UnauthorizedClient",
	CodeInternalServerError:           "InternalServerError",
	CodeInternalServerException:       "InternalServerException",
	CodeInboundConnectionLimitExceeded: "InboundConnectionLimitExceeded",
	CodeConnectionException:           "ConnectionException",
	CodeUnknownAtClientException:      "UnknownAtClientException",
	CodeKeyNotFound:                   "KeyNotFound",
	CodeUnableToConnectToSecondary:    "UnableToConnectToSecondary",
	CodeClientAuthenticationFailed:    "ClientAuthenticationFailed",
}

// CodeMessage returns the categorical variant name for a wire code, or
// "UnknownAtClientException" if the code isn't recognised.
func CodeMessage(code string) string {
	if m, ok := codeMessages[code]; ok {
		return m
	}
	return "UnknownAtClientException"
}

// IsKnownCode reports whether code is one of the codes named in §4.8.
func IsKnownCode(code string) bool {
	_, ok := codeMessages[code]
	return ok
}
