// Package changelog assembles changelog entries and release notes from a
// diff report.
//
// An entry lists the added and removed types and methods of a schema update
// and summarizes how many existing ones changed:
//
//	entry := changelog.Entry(changelog.Info{
//		ReleaseVersion: "0.5.0",
//		APIVersion:     "7.1",
//		Date:           "2024-02-16",
//	}, result)
//	err := changelog.UpdateFile("CHANGELOG.md", entry)
//
// UpdateFile inserts the entry after the file's header, below the first
// "---" separator, so the newest release is always on top.
package changelog
