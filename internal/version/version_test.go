/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFull(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })

	Version = "v1.2.3"
	GitCommit = "unknown"
	assert.Equal(t, "v1.2.3", Full())

	GitCommit = "0123456789abcdef"
	assert.Equal(t, "v1.2.3 (commit: 0123456)", Full())
	assert.Equal(t, "v1.2.3", Info()["version"])
}
