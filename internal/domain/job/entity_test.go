package job

import (
	"testing"
	"time"
)

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if (Job{ExpiresAt: now.Add(time.Second)}).Expired(now) {
		t.Error("future expires_at must not be expired")
	}
	if !(Job{ExpiresAt: now}).Expired(now) {
		t.Error("expires_at equal to now is already expired")
	}
	if !(Job{ExpiresAt: now.Add(-time.Second)}).Expired(now) {
		t.Error("past expires_at must be expired")
	}
}
