// SPDX-License-Identifier: Apache-2.0

package attach

import (
	"fmt"
	"regexp"
)

// CurrentPattern matches attachments uploaded through the issue editor,
// independent of the repository they were posted to.
var CurrentPattern = regexp.MustCompile(`^https://github\.com/user-attachments/(?:assets|files)/[\w./-]+$`)

// LegacyPattern matches the older repository-scoped attachment URLs of
// owner/repo.
func LegacyPattern(owner, repo string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^https://github\.com/%s/%s/(?:assets|files)/[\w./-]+$`,
		regexp.QuoteMeta(owner), regexp.QuoteMeta(repo)))
}
