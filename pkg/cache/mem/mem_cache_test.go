/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("get and set", func(t *testing.T) {
		c := New()

		_, ok := c.Get("nzcp.identity.health.nz")
		require.False(t, ok)

		doc := map[string]interface{}{"id": "did:web:nzcp.identity.health.nz"}
		c.Set("nzcp.identity.health.nz", doc)

		v, ok := c.Get("nzcp.identity.health.nz")
		require.True(t, ok)
		require.Equal(t, doc, v)
		require.Equal(t, 1, c.Len())
	})

	t.Run("set replaces", func(t *testing.T) {
		c := New()
		c.Set("k", 1)
		c.Set("k", 2)

		v, ok := c.Get("k")
		require.True(t, ok)
		require.Equal(t, 2, v)
	})

	t.Run("delete and clear", func(t *testing.T) {
		c := New()
		c.Set("a", 1)
		c.Set("b", 2)

		c.Delete("a")
		_, ok := c.Get("a")
		require.False(t, ok)

		c.Clear()
		require.Equal(t, 0, c.Len())
	})

	t.Run("concurrent use", func(t *testing.T) {
		c := New()

		var wg sync.WaitGroup

		for i := 0; i < 20; i++ {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()

				key := fmt.Sprintf("host-%d", i%5)
				c.Set(key, i)
				c.Get(key)
			}(i)
		}

		wg.Wait()
		require.Equal(t, 5, c.Len())
	})
}
