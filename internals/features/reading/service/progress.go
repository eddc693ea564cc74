package service

import "math"

// progressFromPage returns round(page / pages * 100), never above 100.
func progressFromPage(page, pages int) int {
	if pages <= 0 || page <= 0 {
		return 0
	}
	pct := int(math.Round(float64(page) / float64(pages) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// pageFromProgress returns round(pct / 100 * pages).
func pageFromProgress(pct, pages int) int {
	if pages <= 0 || pct <= 0 {
		return 0
	}
	return int(math.Round(float64(pct) / 100 * float64(pages)))
}
