package instance

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// ParseShopType maps a --shop-type flag value to the problem package's
// ShopType. "flow" and "fixedorder" both name the fixed-order permutation
// flow shop (spec.md's own FORPFSSPSD expansion); "job" names the
// free-order job shop.
func ParseShopType(name string) (problem.ShopType, error) {
	switch name {
	case "", "fixedorder", "flow":
		return problem.ShopFixedOrder, nil
	case "job":
		return problem.ShopJobShop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShopType, name)
	}
}
