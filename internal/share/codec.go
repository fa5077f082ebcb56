// Package share encodes résumé snapshots into shareable links and decodes them back.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/github-resume/internal/types"
)

// DefaultOrigin is the canonical host every share link points at.
// Links stay valid across deployments only while this host serves the builder.
const DefaultOrigin = "https://github-resume-gen.netlify.app"

// QueryParam is the query parameter that carries the token.
const QueryParam = "resume"

// Codec builds share links against a fixed origin and reads them back
type Codec struct {
	baseURL string
	logger  *log.Logger
}

// NewCodec creates a codec for the given origin. An empty origin uses DefaultOrigin.
func NewCodec(origin string, logger *log.Logger) *Codec {
	if origin == "" {
		origin = DefaultOrigin
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Codec{
		baseURL: strings.TrimRight(origin, "/"),
		logger:  logger,
	}
}

// BaseURL returns the origin links are built against.
func (c *Codec) BaseURL() string {
	return c.baseURL
}

// Encode returns the share link for a snapshot.
// It never fails loudly: on error it logs and returns ok=false.
func (c *Codec) Encode(data *types.ResumeData) (link string, ok bool) {
	token, err := EncodeToken(data)
	if err != nil {
		c.logger.Printf("[SHARE] Error generating shareable link: %v", err)
		return "", false
	}
	return fmt.Sprintf("%s?%s=%s", c.baseURL, QueryParam, token), true
}

// Decode reads the resume parameter from a raw query string or a full link.
// Returns nil when the parameter is absent or the token cannot be decoded.
func (c *Codec) Decode(source string) *types.ResumeData {
	token, found, err := tokenFromSource(source)
	if err != nil {
		c.logger.Printf("[SHARE] Error reading shared data: %v", err)
		return nil
	}
	if !found {
		return nil
	}

	data, err := DecodeToken(token)
	if err != nil {
		c.logger.Printf("[SHARE] Error reading shared data: %v", err)
		return nil
	}
	return data
}

// EncodeToken serializes a snapshot to JSON and applies base64url without padding.
// JSON output is UTF-8, so any Unicode text survives the byte-oriented transform.
func EncodeToken(data *types.ResumeData) (string, error) {
	if data == nil {
		return "", &EncodeError{Message: "nil resume data"}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return "", &EncodeError{Message: "failed to marshal resume data", Cause: err}
	}

	return base64.RawURLEncoding.EncodeToString(jsonBytes), nil
}

// DecodeToken reverses EncodeToken. Tokens from older links that used
// standard padded base64 are accepted too.
func DecodeToken(token string) (*types.ResumeData, error) {
	if token == "" {
		return nil, &DecodeError{Message: "empty token"}
	}

	jsonBytes, err := decodeBase64(token)
	if err != nil {
		return nil, &DecodeError{Message: "token is not valid base64", Cause: err}
	}
	// Tokens made by btoa carry Latin-1 bytes; encoded JSON is always UTF-8.
	if !utf8.Valid(jsonBytes) {
		jsonBytes = latin1ToUTF8(jsonBytes)
	}

	var data types.ResumeData
	if err := json.Unmarshal(jsonBytes, &data); err != nil {
		return nil, &DecodeError{Message: "token does not contain resume JSON", Cause: err}
	}

	return &data, nil
}

func decodeBase64(token string) ([]byte, error) {
	trimmed := strings.TrimRight(token, "=")
	if b, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil {
		return b, nil
	}

	// Query parsing turns '+' into ' ' for unescaped legacy tokens.
	legacy := strings.ReplaceAll(token, " ", "+")
	if b, err := base64.StdEncoding.DecodeString(legacy); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(legacy, "="))
}

func latin1ToUTF8(b []byte) []byte {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return []byte(string(runes))
}

// tokenFromSource accepts "resume=...", "?resume=..." or a full URL.
func tokenFromSource(source string) (string, bool, error) {
	query := strings.TrimSpace(source)
	if strings.Contains(query, "://") {
		u, err := url.Parse(query)
		if err != nil {
			return "", false, fmt.Errorf("failed to parse link: %w", err)
		}
		query = u.RawQuery
	}
	query = strings.TrimPrefix(query, "?")

	values, err := url.ParseQuery(query)
	if err != nil {
		return "", false, fmt.Errorf("failed to parse query: %w", err)
	}
	if !values.Has(QueryParam) {
		return "", false, nil
	}
	token := values.Get(QueryParam)
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}
