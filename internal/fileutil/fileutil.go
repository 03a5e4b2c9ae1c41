// Package fileutil holds the permission modes used when writing output files.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for report files written on
// request (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for files meant to be committed
// and read by other tools, such as a changelog.
const ReadableByAll os.FileMode = 0o644
