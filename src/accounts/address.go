// MIT License
//
// Copyright (c) 2025 vl1-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/accounts/address.go
package accounts

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/vl1-core/go/src/common"
	"golang.org/x/crypto/ripemd160"
)

// Prefix byte for address generation
const prefixByte = 0x78 // ASCII 'x'

// payloadLen is the decoded address length: prefix byte + RIPEMD-160 hash.
const payloadLen = 1 + ripemd160.Size

// pubKeyToHash hashes the public key twice with SHA3-256.
func pubKeyToHash(pubKey []byte) []byte {
	firstHash := common.Digest(pubKey)
	secondHash := common.Digest(firstHash)
	return secondHash
}

// hashToRipemd160 applies RIPEMD-160 to the double SHA3 result.
func hashToRipemd160(hashPubKey []byte) []byte {
	h := ripemd160.New()
	h.Write(hashPubKey)
	return h.Sum(nil)
}

// ripemd160ToBase58 prepends the prefix byte and applies Base58 encoding.
func ripemd160ToBase58(ripemd160PubKey []byte) string {
	addressBytes := append([]byte{prefixByte}, ripemd160PubKey...)
	return base58.Encode(addressBytes)
}

// GenerateAddress derives an owner address from a public key by applying
// double SHA3-256, RIPEMD-160, and Base58 encoding with the 'x' prefix.
func GenerateAddress(pubKey []byte) (string, error) {
	if len(pubKey) == 0 {
		return "", fmt.Errorf("public key is empty")
	}
	hashed := pubKeyToHash(pubKey)
	ripemd := hashToRipemd160(hashed)
	return ripemd160ToBase58(ripemd), nil
}

// ValidateAddress checks that an address decodes to the expected payload:
// 21 bytes, starting with the 'x' prefix byte. The registry itself never
// interprets owner identities; this check lives at the transport edge so
// malformed callers are rejected before they reach the record store.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address is empty")
	}
	decoded := base58.Decode(address)
	if len(decoded) != payloadLen {
		return fmt.Errorf("invalid address length: expected %d bytes, got %d", payloadLen, len(decoded))
	}
	if decoded[0] != prefixByte {
		return fmt.Errorf("invalid address prefix: expected 0x%02x, got 0x%02x", prefixByte, decoded[0])
	}
	return nil
}
