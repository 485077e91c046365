package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// regions lists every county and city served by dataset F-D0047-091.
var regions = []string{
	"宜蘭縣", "花蓮縣", "臺東縣", "澎湖縣", "金門縣", "連江縣",
	"臺北市", "新北市", "桃園市", "臺中市", "臺南市", "高雄市",
	"基隆市", "新竹縣", "新竹市", "苗栗縣", "彰化縣", "南投縣",
	"雲林縣", "嘉義縣", "嘉義市", "屏東縣",
}

var regionSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		m[r] = struct{}{}
	}
	return m
}()

// IsLegal reports whether region is exactly one of the names in [Regions].
// No trimming, normalization or script conversion is applied.
func IsLegal(region string) bool {
	_, ok := regionSet[region]
	return ok
}

// SuggestRegion returns the legal name that region was probably meant to be,
// for use in error hints. It only trims surrounding whitespace and applies
// NFC normalization; a suggestion never makes the input itself legal.
func SuggestRegion(region string) (string, bool) {
	if IsLegal(region) {
		return "", false
	}
	candidate := norm.NFC.String(strings.TrimSpace(region))
	if !IsLegal(candidate) {
		return "", false
	}
	return candidate, true
}

// Regions returns the legal county names in canonical order.
func Regions() []string {
	return slices.Clone(regions)
}
