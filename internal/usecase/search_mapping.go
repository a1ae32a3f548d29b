package usecase

import (
	"strconv"
	"strings"
	"time"

	"job-scout/internal/domain/job"
	"job-scout/internal/search"
)

// upsertFromItem maps one raw scraper record to an upsert. The whole record
// is retained as RawPayload so fields we don't model survive round trips;
// normalized fields always win on key collision when responses are built.
func upsertFromItem(item map[string]any, now time.Time) (job.Upsert, bool) {
	url := firstString(item, "jobUrl", "job_url", "url", "link")
	if url == "" {
		return job.Upsert{}, false
	}

	postedText := firstString(item, "postedAtText", "postedTime", "posted_time", "listedAt")
	postedAt := now
	if raw := firstString(item, "postedAt", "posted_at"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			postedAt = t
		} else {
			postedAt = search.ParsePostedAt(raw, now)
		}
	} else {
		postedAt = search.ParsePostedAt(postedText, now)
	}

	return job.Upsert{
		JobURL:         url,
		Title:          firstString(item, "title", "jobTitle"),
		Company:        firstString(item, "company", "companyName", "company_name"),
		Location:       firstString(item, "location", "jobLocation"),
		WorkType:       firstString(item, "workType", "work_type", "employmentType", "jobType"),
		Salary:         firstString(item, "salary", "salaryInfo"),
		Description:    firstString(item, "description", "jobDescription"),
		Skills:         stringSlice(item["skills"]),
		Benefits:       stringSlice(item["benefits"]),
		IsEasyApply:    boolValue(item["isEasyApply"], item["easyApply"]),
		ApplicantCount: intValue(item["applicantCount"], item["applicationsCount"]),
		PostedAt:       postedAt,
		PostedAtText:   postedText,
		ExpiresAt:      postedAt.AddDate(0, 0, job.RetentionDays),
		RawPayload:     item,
	}, true
}

func firstString(item map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := item[k]; ok {
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func boolValue(candidates ...any) bool {
	for _, v := range candidates {
		switch vv := v.(type) {
		case bool:
			return vv
		case string:
			if b, err := strconv.ParseBool(vv); err == nil {
				return b
			}
		}
	}
	return false
}

func intValue(candidates ...any) int {
	for _, v := range candidates {
		switch vv := v.(type) {
		case int:
			return vv
		case float64:
			return int(vv)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(vv)); err == nil {
				return n
			}
		}
	}
	return 0
}
