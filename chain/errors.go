package chain

import "github.com/ModChain/visualsign/visignerr"

// ErrDepthExceeded is returned by Context.WithDepth when a visualizer's
// recursive sub-call walk would exceed the configured MaxDepth.
var ErrDepthExceeded = visignerr.Parse("DepthExceeded", -1, nil)

// ErrPayloadTooLarge is returned by codecs before any parsing begins when
// the input exceeds Limits.MaxPayloadSize.
var ErrPayloadTooLarge = visignerr.Parse("PayloadTooLarge", -1, nil)
