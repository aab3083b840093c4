package build

import (
	"fmt"

	"github.com/simfoundry/simpack/internal/brand"
)

// Banner formats. Chosen solely by brand; both embed the resolved title,
// version, and the year of the build.

const openBanner = `%s %s
Copyright 2002-%d Simulation Foundry and contributors.
Released under the open simulation license. This artifact embeds third-party
components distributed under their own licenses; see the embedded license
entries for attribution.
https://simfoundry.example/licensing`

const restrictedBanner = `%s %s
Copyright 2002-%d Simulation Foundry and contributors.
PROPRIETARY BUILD. Licensed for evaluation and institutional use only under
the restricted distribution agreement. Redistribution, modification, or
re-hosting of this artifact is prohibited without written permission.
https://simfoundry.example/licensing`

// Selects and fills the header banner for a build.
func banner(b brand.Brand, title, version string, year int) string {
	format := openBanner
	if b == brand.Restricted {
		format = restrictedBanner
	}
	return fmt.Sprintf(format, title, version, year)
}
