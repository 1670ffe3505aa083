/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cache defines the document cache used by the did:web key resolver.
package cache

// Cache stores decoded DID documents keyed by host.
//
// The resolver performs at most one Get and one Set per verification and assumes no atomicity
// across the two. Concurrent verifications may therefore fetch the same document twice.
type Cache interface {
	// Get returns the value stored under key and whether it was found.
	Get(key string) (interface{}, bool)
	// Set stores value under key, replacing any earlier value.
	Set(key string, value interface{})
}
