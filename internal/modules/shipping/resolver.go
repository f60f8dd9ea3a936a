package shipping

import "strings"

// CostForZones returns the supplier's total shipping cost for an order that
// ships into the given zones. Each distinct zone is counted once no matter
// how many line items requested it; zone matching is case-insensitive. A zone
// the supplier has not published a rate for contributes zero.
func CostForZones(rates []*Rate, zones []string) float64 {
	seen := make(map[string]bool, len(zones))
	var total float64

	for _, zone := range zones {
		if zone == "" {
			continue
		}
		key := strings.ToLower(zone)
		if seen[key] {
			continue
		}
		seen[key] = true

		for _, rate := range rates {
			if strings.EqualFold(rate.Zone, zone) {
				total += rate.Price
				break
			}
		}
	}
	return total
}
