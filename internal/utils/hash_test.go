// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashMatchesHMAC(t *testing.T) {
	h := NewHasher("secret-key")
	data := []byte(`{"reason":"updated","record_id":"R1"}`)

	mac := hmac.New(sha256.New, []byte("secret-key"))
	mac.Write(data)

	assert.Equal(t, mac.Sum(nil), h.Hash(data))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), h.Sign(data))
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher("secret-key")
	data := []byte("payload")
	sig := h.Sign(data)

	assert.True(t, h.Verify(data, sig))
	assert.False(t, h.Verify([]byte("other"), sig))
	assert.False(t, h.Verify(data, "not-hex"))
	assert.False(t, NewHasher("another-key").Verify(data, sig))
}

// Пул не должен смешивать состояние между горутинами.
func TestHasher_ConcurrentUse(t *testing.T) {
	h := NewHasher("k")
	want := h.Sign([]byte("same"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, h.Sign([]byte("same")))
		}()
	}
	wg.Wait()
}

func TestHashString(t *testing.T) {
	got := HashString("data", "key")
	require.Len(t, got, 64)
	assert.Equal(t, NewHasher("key").Sign([]byte("data")), got)
}
