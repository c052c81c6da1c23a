// Package httpcat maps HTTP status codes to the closed catalog served by
// http.cat and fetches the matching cat picture as a decoded image.
package httpcat

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Status is one entry of the http.cat catalog. Its value is the numeric HTTP
// status code and never changes.
type Status uint16

// 1xx
const (
	Continue Status = 100 + iota
	SwitchingProtocols
	Processing
	EarlyHints
)

// 2xx
const (
	OK Status = 200 + iota
	Created
	Accepted
	NonAuthoritativeInformation
	NoContent
	ResetContent
	PartialContent
	MultiStatus
	AlreadyReported
)

const IMUsed Status = 226

// 3xx
const (
	MultipleChoices Status = 300 + iota
	MovedPermanently
	Found
	SeeOther
	NotModified
	UseProxy
)

const (
	TemporaryRedirect Status = 307 + iota
	PermanentRedirect
)

// 4xx
const (
	BadRequest Status = 400 + iota
	Unauthorized
	PaymentRequired
	Forbidden
	NotFound
	MethodNotAllowed
	NotAcceptable
	ProxyAuthenticationRequired
	RequestTimeout
	Conflict
	Gone
	LengthRequired
	PreconditionFailed
	PayloadTooLarge
	RequestURITooLong
	UnsupportedMediaType
	RequestRangeNotSatisfiable
	ExpectationFailed
	ImATeapot
)

const (
	EnhanceYourCalm Status = 420 + iota
	MisdirectedRequest
	UnprocessableEntity
	Locked
	FailedDependency
	TooEarly
	UpgradeRequired
)

const (
	PreconditionRequired Status = 428 + iota
	TooManyRequests
)

const (
	RequestHeaderFieldsTooLarge      Status = 431
	NoResponse                       Status = 444
	BlockedByWindowsParentalControls Status = 450
	UnavailableForLegalReasons       Status = 451
)

// 497..499 are nginx extensions and run straight into 5xx.
const (
	HTTPRequestSentToHTTPSPort Status = 497 + iota
	TokenExpiredInvalid
	ClientClosedRequest
	InternalServerError
	NotImplemented
	BadGateway
	ServiceUnavailable
	GatewayTimeout
)

const (
	VariantAlsoNegotiates Status = 506 + iota
	InsufficientStorage
	LoopDetected
	BandwidthLimitExceeded
	NotExtended
	NetworkAuthenticationRequired
)

const (
	WebServerIsDown Status = 521 + iota
	ConnectionTimedOut
	OriginIsUnreachable
)

const (
	SSLHandshakeFailed         Status = 525
	SiteFrozen                 Status = 530
	NetworkConnectTimeoutError Status = 599
)

var names = map[Status]string{
	Continue:                         "Continue",
	SwitchingProtocols:               "SwitchingProtocols",
	Processing:                       "Processing",
	EarlyHints:                       "EarlyHints",
	OK:                               "OK",
	Created:                          "Created",
	Accepted:                         "Accepted",
	NonAuthoritativeInformation:      "NonAuthoritativeInformation",
	NoContent:                        "NoContent",
	ResetContent:                     "ResetContent",
	PartialContent:                   "PartialContent",
	MultiStatus:                      "MultiStatus",
	AlreadyReported:                  "AlreadyReported",
	IMUsed:                           "IMUsed",
	MultipleChoices:                  "MultipleChoices",
	MovedPermanently:                 "MovedPermanently",
	Found:                            "Found",
	SeeOther:                         "SeeOther",
	NotModified:                      "NotModified",
	UseProxy:                         "UseProxy",
	TemporaryRedirect:                "TemporaryRedirect",
	PermanentRedirect:                "PermanentRedirect",
	BadRequest:                       "BadRequest",
	Unauthorized:                     "Unauthorized",
	PaymentRequired:                  "PaymentRequired",
	Forbidden:                        "Forbidden",
	NotFound:                         "NotFound",
	MethodNotAllowed:                 "MethodNotAllowed",
	NotAcceptable:                    "NotAcceptable",
	ProxyAuthenticationRequired:      "ProxyAuthenticationRequired",
	RequestTimeout:                   "RequestTimeout",
	Conflict:                         "Conflict",
	Gone:                             "Gone",
	LengthRequired:                   "LengthRequired",
	PreconditionFailed:               "PreconditionFailed",
	PayloadTooLarge:                  "PayloadTooLarge",
	RequestURITooLong:                "RequestURITooLong",
	UnsupportedMediaType:             "UnsupportedMediaType",
	RequestRangeNotSatisfiable:       "RequestRangeNotSatisfiable",
	ExpectationFailed:                "ExpectationFailed",
	ImATeapot:                        "ImATeapot",
	EnhanceYourCalm:                  "EnhanceYourCalm",
	MisdirectedRequest:               "MisdirectedRequest",
	UnprocessableEntity:              "UnprocessableEntity",
	Locked:                           "Locked",
	FailedDependency:                 "FailedDependency",
	TooEarly:                         "TooEarly",
	UpgradeRequired:                  "UpgradeRequired",
	PreconditionRequired:             "PreconditionRequired",
	TooManyRequests:                  "TooManyRequests",
	RequestHeaderFieldsTooLarge:      "RequestHeaderFieldsTooLarge",
	NoResponse:                       "NoResponse",
	BlockedByWindowsParentalControls: "BlockedByWindowsParentalControls",
	UnavailableForLegalReasons:       "UnavailableForLegalReasons",
	HTTPRequestSentToHTTPSPort:       "HTTPRequestSentToHTTPSPort",
	TokenExpiredInvalid:              "TokenExpiredInvalid",
	ClientClosedRequest:              "ClientClosedRequest",
	InternalServerError:              "InternalServerError",
	NotImplemented:                   "NotImplemented",
	BadGateway:                       "BadGateway",
	ServiceUnavailable:               "ServiceUnavailable",
	GatewayTimeout:                   "GatewayTimeout",
	VariantAlsoNegotiates:            "VariantAlsoNegotiates",
	InsufficientStorage:              "InsufficientStorage",
	LoopDetected:                     "LoopDetected",
	BandwidthLimitExceeded:           "BandwidthLimitExceeded",
	NotExtended:                      "NotExtended",
	NetworkAuthenticationRequired:    "NetworkAuthenticationRequired",
	WebServerIsDown:                  "WebServerIsDown",
	ConnectionTimedOut:               "ConnectionTimedOut",
	OriginIsUnreachable:              "OriginIsUnreachable",
	SSLHandshakeFailed:               "SSLHandshakeFailed",
	SiteFrozen:                       "SiteFrozen",
	NetworkConnectTimeoutError:       "NetworkConnectTimeoutError",
}

var (
	catalog []Status
	byName  map[string]Status
)

func init() {
	catalog = make([]Status, 0, len(names))
	byName = make(map[string]Status, len(names))
	for s, name := range names {
		catalog = append(catalog, s)
		byName[strings.ToLower(name)] = s
	}
	slices.Sort(catalog)
}

// FromCode returns the catalog entry for code. Codes without an entry fail
// with *UnknownStatusCodeError; there is no fallback to a nearby code.
func FromCode(code uint16) (Status, error) {
	s := Status(code)
	if _, ok := names[s]; !ok {
		return 0, &UnknownStatusCodeError{Code: code}
	}
	return s, nil
}

// FromInt is FromCode for int-typed status codes such as the ones carried by
// net/http, echo and resty.
func FromInt(code int) (Status, error) {
	if code < 0 || code > 0xFFFF {
		return 0, fmt.Errorf("%w: %d is out of range", ErrUnknownStatusCode, code)
	}
	return FromCode(uint16(code))
}

// ParseName resolves an entry by its Go name, ignoring case.
func ParseName(name string) (Status, error) {
	s, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: no entry named %q", ErrUnknownStatusCode, name)
	}
	return s, nil
}

// All returns every catalog entry in ascending order.
func All() []Status {
	return slices.Clone(catalog)
}

// Code returns the numeric HTTP status code.
func (s Status) Code() uint16 { return uint16(s) }

// Valid reports whether s is part of the catalog.
func (s Status) Valid() bool {
	_, ok := names[s]
	return ok
}

func (s Status) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// URL joins base and the numeric code, e.g. https://http.cat/418.
func (s Status) URL(base string) string {
	return strings.TrimRight(base, "/") + "/" + strconv.Itoa(int(s))
}
