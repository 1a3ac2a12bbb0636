package render

import "errors"

// ErrTemplateNotFound indicates the named template file does not exist in
// the configured templates directory.
var ErrTemplateNotFound = errors.New("template not found")
