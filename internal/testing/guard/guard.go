// Package guard flips the storefront into test mode the moment any test
// binary that imports it starts.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("STOREFRONT_TEST_MODE") == "" {
			_ = os.Setenv("STOREFRONT_TEST_MODE", "1")
		}
	})
}
