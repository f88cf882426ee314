package main

import (
	"github.com/tandemnet/tandemd/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.TGCL)
