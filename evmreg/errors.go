package evmreg

import "github.com/ModChain/visualsign/visignerr"

var errBadArgCount = visignerr.Calldata("BadArgCount", -1, nil)
