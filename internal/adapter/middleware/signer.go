package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/labstack/echo/v4"
)

const (
	HeaderSignerAddress = "Ax-Signer-Address"
	HeaderSignature     = "Ax-Signature"
	HeaderRequestAt     = "Ax-Request-At"
	HeaderRequestID     = "Ax-Request-Id"

	signerKey = "ax.signer"

	defaultMaxBodyBytes = 1 << 20
)

var (
	errBadSignature   = errors.New("Ax-Signature must be 0x-prefixed 65-byte hex")
	errSignerMismatch = errors.New("signature does not match Ax-Signer-Address")
	errBodyTooLarge   = errors.New("request body too large")
)

// SigningMessage is the payload a client signs with personal_sign (EIP-191):
// METHOD \n PATH \n Ax-Request-At \n Ax-Request-Id \n hex(sha256(body)).
// The request id plays the role of a nonce: a captured signature is only valid
// under the id it was issued for.
func SigningMessage(method, path, requestAt, requestID string, body []byte) []byte {
	return []byte(strings.ToUpper(method) + "\n" + path + "\n" + strings.TrimSpace(requestAt) + "\n" +
		strings.TrimSpace(requestID) + "\n" + bodyHash(body))
}

// readBody buffers at most limit bytes and puts them back for the handler.
func readBody(req *http.Request, limit int64) ([]byte, error) {
	if req.Body == nil {
		req.Body = io.NopCloser(bytes.NewReader(nil))
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(req.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, errBodyTooLarge
	}
	req.Body = io.NopCloser(bytes.NewBuffer(body))
	return body, nil
}

// RecoverSigner returns the address that produced sig over msg. V may be 0/1 or 27/28.
func RecoverSigner(msg []byte, rawSig string) (common.Address, error) {
	sig, err := hexutil.Decode(strings.TrimSpace(rawSig))
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, errBadSignature
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash(msg), sig)
	if err != nil {
		return common.Address{}, errBadSignature
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func withinSkew(at, now time.Time, skew time.Duration) bool {
	return !at.Before(now.Add(-skew)) && !at.After(now.Add(skew))
}

// SignerMiddleware authenticates the caller of a mutating route. The recovered
// address, never the header alone, becomes the caller identity. Bodies above
// maxBody bytes are refused before any signature work.
func SignerMiddleware(maxSkew time.Duration, maxBody int64) echo.MiddlewareFunc {
	if maxSkew <= 0 {
		maxSkew = defaultClockSkew
	}
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			claimed := strings.TrimSpace(req.Header.Get(HeaderSignerAddress))
			if claimed == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderSignerAddress})
			}
			if !common.IsHexAddress(claimed) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid " + HeaderSignerAddress})
			}
			if strings.TrimSpace(req.Header.Get(HeaderSignature)) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderSignature})
			}

			reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if reqID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderRequestID})
			}

			rawAt := req.Header.Get(HeaderRequestAt)
			reqAt, err := parseAxRequestAt(rawAt)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			if !withinSkew(reqAt, nowUTC(), maxSkew) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Ax-Request-At too skewed"})
			}

			body, err := readBody(req, maxBody)
			if errors.Is(err, errBodyTooLarge) {
				return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
			}
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "cannot read request body"})
			}

			msg := SigningMessage(req.Method, req.URL.Path, rawAt, reqID, body)
			addr, err := RecoverSigner(msg, req.Header.Get(HeaderSignature))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			if addr != common.HexToAddress(claimed) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": errSignerMismatch.Error()})
			}
			c.Set(signerKey, addr)
			return next(c)
		}
	}
}

// Signer returns the address authenticated by SignerMiddleware.
func Signer(c echo.Context) (common.Address, bool) {
	a, ok := c.Get(signerKey).(common.Address)
	return a, ok
}
