package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy *bluemonday.Policy
	once   sync.Once
)

// Clean strips all HTML tags and attributes from the input string. Used for
// user supplied values that end up echoed back, like uploaded file names.
func Clean(s string) string {
	once.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy.Sanitize(s)
}
