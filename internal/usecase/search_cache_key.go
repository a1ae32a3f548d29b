package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"job-scout/internal/domain/term"
)

type searchCacheKeyInput struct {
	Keywords  string `json:"keywords"`
	Location  string `json:"location"`
	Remote    *bool  `json:"remote"`
	EasyApply *bool  `json:"easy_apply"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

// SearchResponseCacheKey hashes the normalized server-side parameters.
// Client-pass filters are deliberately excluded: they run over the cached
// page, not before it.
func SearchResponseCacheKey(p SearchParams) string {
	in := searchCacheKeyInput{
		Keywords:  term.Normalize(p.Keywords),
		Location:  term.Normalize(p.Location),
		Remote:    p.Remote,
		EasyApply: p.EasyApply,
		Page:      p.Page,
		PageSize:  p.PageSize,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "search:response:" + hex.EncodeToString(sum[:])
}

func FetchLockKey(rawTerm string) string {
	return "search:fetch-lock:" + term.Normalize(rawTerm)
}
