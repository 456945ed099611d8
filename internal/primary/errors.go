package primary

import "errors"

// ErrNoQuorum is returned by Append when fewer than a majority of
// (primary + secondaries) are currently Healthy (C6).
var ErrNoQuorum = errors.New("primary: no quorum")

// ErrBadRequest is returned by Append for malformed input: an empty
// message, or a write_concern outside [1, 1+len(secondaries)].
var ErrBadRequest = errors.New("primary: bad request")
