// Copyright 2023 GreyXor. All rights reserved.
// Mount of this source code is governed by a MIT license that can be found
// at https://gitlab.com/greyxor/slogor/-/blob/main/LICENSE?ref_type=heads.

package slogpretty

// ANSI escape codes.
const (
	reset           = "\033[0m"
	bold            = "\033[1m"
	faint           = "\033[2m"
	normalIntensity = "\033[22m"

	fgRed     = "\033[31m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgMagenta = "\033[35m"
	fgCyan    = "\033[36m"

	bgBlue = "\033[44m"
)
