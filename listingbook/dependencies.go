// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package listingbook

import (
	"github.com/ava-labs/avalanchego/utils/logging"
)

type Controller interface {
	Logger() logging.Logger
}
