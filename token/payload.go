// Package token reads the claims carried by VOC session tokens.
//
// Session tokens are three-part signed strings (header.payload.signature)
// issued by the VOC API. This package decodes the payload segment only. It
// never verifies the signature, so its output must not be trusted for
// authorisation decisions: the portal uses it for UI personalisation and
// expiry-based gating, the API remains the authority on every call.
package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	ClaimUserID = "userId"
	ClaimExpiry = "exp"
)

// NowTimeFunc is the clock used for expiry checks.
var NowTimeFunc = time.Now

// Claims is the decoded payload segment of a session token.
type Claims jwtlib.MapClaims

// DecodeError reports a token whose payload could not be read.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed token: %s: %v", e.Reason, e.Err)
	}
	return "malformed token: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == vocerrors.ErrMalformedToken
}

var segmentParser = jwtlib.NewParser(jwtlib.WithPaddingAllowed())

// DecodePayload returns the claims held in the middle segment of raw.
func DecodePayload(raw string) (Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, &DecodeError{Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}

	data, err := decodeSegment(parts[1])
	if err != nil {
		return nil, &DecodeError{Reason: "payload is not base64", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	claims := Claims{}
	if err := dec.Decode(&claims); err != nil {
		return nil, &DecodeError{Reason: "payload is not a JSON object", Err: err}
	}
	if claims == nil {
		return nil, &DecodeError{Reason: "payload is null"}
	}
	if dec.More() {
		return nil, &DecodeError{Reason: "trailing data after payload"}
	}
	return claims, nil
}

// decodeSegment accepts the URL-safe alphabet used by JWTs and, failing that,
// the standard alphabet.
func decodeSegment(seg string) ([]byte, error) {
	data, err := segmentParser.DecodeSegment(seg)
	if err == nil {
		return data, nil
	}
	if data, stdErr := base64.StdEncoding.DecodeString(seg); stdErr == nil {
		return data, nil
	}
	if data, stdErr := base64.RawStdEncoding.DecodeString(seg); stdErr == nil {
		return data, nil
	}
	return nil, err
}

// UserID returns the userId claim in its textual form.
func (c Claims) UserID() (string, bool) {
	switch v := c[ClaimUserID].(type) {
	case json.Number:
		return v.String(), true
	case string:
		return v, v != ""
	case float64:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// Expiry returns the exp claim. ok is false when the claim is absent; err is
// set when it is present but not a number.
func (c Claims) Expiry() (exp time.Time, ok bool, err error) {
	nd, err := jwtlib.MapClaims(c).GetExpirationTime()
	if err != nil {
		return time.Time{}, true, err
	}
	if nd == nil {
		return time.Time{}, false, nil
	}
	return nd.Time, true, nil
}

// ExtractUserID returns the subject of raw, or false when the token cannot be
// decoded or carries no userId.
func ExtractUserID(raw string) (string, bool) {
	claims, err := DecodePayload(raw)
	if err != nil {
		log.Debug().Err(err).Msg("token: unable to extract user id")
		return "", false
	}
	return claims.UserID()
}

// IsExpired reports whether raw should no longer be used. Undecodable tokens
// and non-numeric exp claims count as expired. A token without exp never
// expires on the client; the API still rejects it once it is stale.
func IsExpired(raw string) bool {
	claims, err := DecodePayload(raw)
	if err != nil {
		log.Debug().Err(err).Msg("token: treating undecodable token as expired")
		return true
	}

	exp, ok, err := claims.expirySeconds()
	if err != nil {
		log.Debug().Err(err).Msg("token: treating token with invalid exp as expired")
		return true
	}
	if !ok {
		return false
	}
	return float64(NowTimeFunc().Unix()) >= exp
}

// expirySeconds returns exp as raw seconds. Values beyond the range of
// time.Time stay comparable this way.
func (c Claims) expirySeconds() (float64, bool, error) {
	v, present := c[ClaimExpiry]
	if !present {
		return 0, false, nil
	}
	switch exp := v.(type) {
	case json.Number:
		f, err := exp.Float64()
		// Out of range values parse to an infinity, which still compares correctly
		if err != nil && !math.IsInf(f, 0) {
			return 0, true, fmt.Errorf("%w: exp %q", jwtlib.ErrInvalidType, exp)
		}
		return f, true, nil
	case float64:
		return exp, true, nil
	default:
		return 0, true, fmt.Errorf("%w: exp has type %T", jwtlib.ErrInvalidType, v)
	}
}
