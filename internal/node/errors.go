package node

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	// ErrNotFound is returned when the node does not know the requested object.
	ErrNotFound = errors.New("node: not found")
	// ErrRejected is returned when the node refused the request.
	ErrRejected = errors.New("node: request rejected")
	// ErrInvalidHash is returned for malformed block hashes.
	ErrInvalidHash = errors.New("node: invalid hash")
	// ErrMalformedResponse is returned when a response cannot be decoded.
	ErrMalformedResponse = errors.New("node: malformed response")
)

// IsPermanent reports whether retrying the failed call cannot succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRejected) ||
		errors.Is(err, ErrInvalidHash) ||
		errors.Is(err, ErrMalformedResponse)
}

func mapError(method string, err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		if rpcErr.Code == btcjson.ErrRPCBlockNotFound ||
			strings.Contains(strings.ToLower(rpcErr.Message), "not found") {
			return fmt.Errorf("%s: %w: %s", method, ErrNotFound, rpcErr.Message)
		}
		return fmt.Errorf("%s: %w: %s (code %d)", method, ErrRejected, rpcErr.Message, rpcErr.Code)
	}
	return fmt.Errorf("%s: %w", method, err)
}

// normalizeHash validates a hex encoded block hash and returns it lower-cased.
func normalizeHash(s string) (string, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return "", fmt.Errorf("%w: %q has length %d", ErrInvalidHash, s, len(s))
	}
	var h chainhash.Hash
	if err := chainhash.Decode(&h, s); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidHash, s, err)
	}
	return strings.ToLower(s), nil
}

func normalizeHashes(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		h, err := normalizeHash(s)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}
