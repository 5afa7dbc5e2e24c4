package bubble

import "errors"

// ErrAborted signals the user left the widget with ctrl+c.
var ErrAborted = errors.New("bubble: aborted")
