package timesync

import "errors"

var (
	// ErrChannelCount indicates the synchronizer was constructed with fewer
	// than two channels.
	ErrChannelCount = errors.New("synchronizer requires at least two channels")
	// ErrInvalidChannel indicates a channel index outside [0, N).
	ErrInvalidChannel = errors.New("invalid channel index")
	// ErrSynchronizerClosed indicates the synchronizer was already closed.
	ErrSynchronizerClosed = errors.New("synchronizer is closed")
	// ErrNoTimestamp indicates no timestamp could be extracted from a message.
	ErrNoTimestamp = errors.New("no timestamp for message")
)
