package types

import (
	"github.com/leekchan/accounting"
)

// USD formats dollar amounts for logs and reports.
var USD = accounting.Accounting{Symbol: "$ ", Precision: 2}
