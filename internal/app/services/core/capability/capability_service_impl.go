package capability

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// capabilityService mints and verifies the detached-signature tokens that
// back reschedule and cancel links. The payload travels base64url-encoded in
// one query parameter and its HMAC-SHA256 signature in another, so the server
// keeps no per-booking state.
type capabilityService struct {
	secret        []byte
	maxAgeMinutes int
	now           func() time.Time
}

func NewCapabilityService(internalConfig *config.InternalConfig) contracts.CapabilityService {
	return &capabilityService{
		secret:        []byte(internalConfig.Capability.Secret),
		maxAgeMinutes: internalConfig.Capability.MaxAgeMinutes,
		now:           time.Now,
	}
}

func (s *capabilityService) Sign(claims contracts.CapabilityClaims) (string, string, error) {
	if claims.IssuedAt == 0 {
		claims.IssuedAt = s.now().Unix()
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded, s.signature(encoded), nil
}

// Verify rejects every malformed, tampered, or expired token with the same
// client-visible error so callers cannot tell which check failed. Only the
// server-side dev message distinguishes an expired token from a bad one.
func (s *capabilityService) Verify(encodedPayload, signature string) (*contracts.CapabilityClaims, error) {
	if encodedPayload == "" || signature == "" {
		return nil, exceptions.ErrCapabilityRejected()
	}

	expected := s.signature(encodedPayload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, exceptions.ErrCapabilityRejected()
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, exceptions.ErrCapabilityRejected()
	}
	var claims contracts.CapabilityClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, exceptions.ErrCapabilityRejected()
	}
	if claims.EventID == "" || claims.BookerEmail == "" {
		return nil, exceptions.ErrCapabilityRejected()
	}

	if s.maxAgeMinutes > 0 {
		issued := time.Unix(claims.IssuedAt, 0)
		if s.now().Sub(issued) > time.Duration(s.maxAgeMinutes)*time.Minute {
			return nil, exceptions.ErrCapabilityExpired()
		}
	}
	return &claims, nil
}

func (s *capabilityService) signature(encodedPayload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
