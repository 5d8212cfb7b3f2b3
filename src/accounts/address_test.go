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

// go/src/accounts/address_test.go
package accounts

import "testing"

func TestGenerateAddress(t *testing.T) {
	addr, err := GenerateAddress([]byte("alice-public-key"))
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}
	if addr == "" {
		t.Fatal("GenerateAddress returned an empty address")
	}
	if err := ValidateAddress(addr); err != nil {
		t.Fatalf("generated address failed validation: %v", err)
	}

	// Derivation must be deterministic.
	again, err := GenerateAddress([]byte("alice-public-key"))
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}
	if again != addr {
		t.Fatalf("address derivation not deterministic: %s != %s", again, addr)
	}

	// Different keys must yield different addresses.
	other, err := GenerateAddress([]byte("bob-public-key"))
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}
	if other == addr {
		t.Fatal("distinct public keys produced the same address")
	}
}

func TestGenerateAddressEmptyKey(t *testing.T) {
	if _, err := GenerateAddress(nil); err == nil {
		t.Fatal("expected error for empty public key")
	}
}

func TestValidateAddressRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not-base58-0OIl",
		"abc",
		"1111111111111111111111111111111111111111111",
	}
	for _, c := range cases {
		if err := ValidateAddress(c); err == nil {
			t.Errorf("ValidateAddress(%q) = nil, want error", c)
		}
	}
}
